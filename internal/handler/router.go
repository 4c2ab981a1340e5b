package handler

import "github.com/go-chi/chi/v5"

// API bundles the handlers behind the authenticated /api routes.
type API struct {
	Auth      *AuthHandler
	Projects  *ProjectHandler
	Directory *DirectoryHandler
	Trips     *TripHandler
	Outreach  *OutreachHandler
	Activity  *ActivityLogHandler
}

// Routes registers every route that requires a signed-in user. Callers wrap
// r with the auth middleware.
func (a *API) Routes(r chi.Router) {
	r.Get("/auth/me", a.Auth.MeHandler)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", a.Projects.ListProjects)
		r.Post("/", a.Projects.CreateProject)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.Projects.GetProject)
			r.Put("/", a.Projects.UpdateProject)
			r.Delete("/", a.Projects.DeleteProject)
			r.Get("/network-groups", a.Projects.ListNetworkGroups)
			r.Post("/network-groups", a.Projects.CreateNetworkGroup)
			r.Get("/experts", a.Projects.ListExperts)
			r.Post("/experts", a.Projects.CreateExpert)
			r.Get("/experts/summary", a.Projects.ExpertStatusCounts)
		})
	})

	r.Route("/network-groups/{id}", func(r chi.Router) {
		r.Get("/", a.Projects.GetNetworkGroup)
		r.Put("/", a.Projects.UpdateNetworkGroup)
		r.Delete("/", a.Projects.DeleteNetworkGroup)
	})

	r.Route("/experts/{id}", func(r chi.Router) {
		r.Get("/", a.Projects.GetExpert)
		r.Put("/", a.Projects.UpdateExpert)
		r.Put("/status", a.Projects.UpdateExpertStatus)
		r.Delete("/", a.Projects.DeleteExpert)
	})

	r.Route("/calls", func(r chi.Router) {
		r.Get("/", a.Projects.ListCalls)
		r.Post("/", a.Projects.CreateCall)
		r.Get("/{id}", a.Projects.GetCall)
		r.Put("/{id}", a.Projects.UpdateCall)
		r.Put("/{id}/status", a.Projects.UpdateCallStatus)
		r.Delete("/{id}", a.Projects.DeleteCall)
	})

	r.Route("/organizations", func(r chi.Router) {
		r.Get("/", a.Directory.ListOrganizations)
		r.Post("/", a.Directory.CreateOrganization)
		r.Get("/{id}", a.Directory.GetOrganization)
		r.Put("/{id}", a.Directory.UpdateOrganization)
		r.Delete("/{id}", a.Directory.DeleteOrganization)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", a.Directory.ListContacts)
		r.Post("/", a.Directory.CreateContact)
		r.Get("/{id}", a.Directory.GetContact)
		r.Put("/{id}", a.Directory.UpdateContact)
		r.Delete("/{id}", a.Directory.DeleteContact)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", a.Trips.ListTrips)
		r.Post("/", a.Trips.CreateTrip)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.Trips.GetTrip)
			r.Put("/", a.Trips.UpdateTrip)
			r.Delete("/", a.Trips.DeleteTrip)
			r.Get("/itinerary", a.Trips.GetItinerary)
			r.Get("/legs", a.Trips.ListTripLegs)
			r.Post("/legs", a.Trips.CreateTripLeg)
			r.Put("/legs/order", a.Trips.ReorderTripLegs)
			r.Get("/lodging", a.Trips.ListLodging)
			r.Post("/lodging", a.Trips.CreateLodging)
			r.Get("/outreach", a.Outreach.ListOutreach)
			r.Get("/outreach/summary", a.Outreach.OutreachSummary)
			r.Post("/meetings/sync", a.Outreach.SyncMeetings)
		})
	})

	r.Route("/trip-legs/{id}", func(r chi.Router) {
		r.Put("/", a.Trips.UpdateTripLeg)
		r.Delete("/", a.Trips.DeleteTripLeg)
	})

	r.Route("/lodging/{id}", func(r chi.Router) {
		r.Put("/", a.Trips.UpdateLodging)
		r.Delete("/", a.Trips.DeleteLodging)
	})

	r.Route("/outreach", func(r chi.Router) {
		r.Post("/", a.Outreach.CreateOutreach)
		r.Get("/{id}", a.Outreach.GetOutreach)
		r.Put("/{id}", a.Outreach.UpdateOutreach)
		r.Put("/{id}/response", a.Outreach.UpdateOutreachResponse)
		r.Delete("/{id}", a.Outreach.DeleteOutreach)
	})

	r.Route("/meetings", func(r chi.Router) {
		r.Get("/", a.Outreach.ListMeetings)
		r.Post("/", a.Outreach.CreateMeeting)
		r.Get("/{id}", a.Outreach.GetMeeting)
		r.Put("/{id}", a.Outreach.UpdateMeeting)
		r.Put("/{id}/status", a.Outreach.UpdateMeetingStatus)
		r.Delete("/{id}", a.Outreach.DeleteMeeting)
	})

	r.Route("/activity", func(r chi.Router) {
		r.Get("/", a.Activity.GetActivityLogs)
		r.Get("/{id}", a.Activity.GetActivityLogByID)
	})
}
