package service

import (
	"sort"

	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/google/uuid"
)

// MeetingDetail is a meeting with the records it points at. A reference
// whose record no longer exists is left nil.
type MeetingDetail struct {
	model.Meeting
	Contact      *model.Contact      `json:"contact"`
	Organization *model.Organization `json:"organization"`
	Outreach     *model.Outreach     `json:"outreach"`
}

// OutreachDetail is an outreach record with its contact and organization.
type OutreachDetail struct {
	model.Outreach
	Contact      *model.Contact      `json:"contact"`
	Organization *model.Organization `json:"organization"`
}

// CallDetail is a call with its expert.
type CallDetail struct {
	model.Call
	Expert *model.Expert `json:"expert"`
}

func lookup[T any](m map[uuid.UUID]T, id uuid.UUID) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

// joinMeetings attaches lookups to meetings and sorts by date then time as
// plain strings.
func joinMeetings(meetings []model.Meeting, contacts map[uuid.UUID]model.Contact, orgs map[uuid.UUID]model.Organization, outreach map[uuid.UUID]model.Outreach) []MeetingDetail {
	out := make([]MeetingDetail, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, MeetingDetail{
			Meeting:      m,
			Contact:      lookup(contacts, m.ContactID),
			Organization: lookup(orgs, m.OrganizationID),
			Outreach:     lookup(outreach, m.OutreachID),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// joinOutreach attaches lookups to outreach records, keeping their order.
func joinOutreach(records []model.Outreach, contacts map[uuid.UUID]model.Contact, orgs map[uuid.UUID]model.Organization) []OutreachDetail {
	out := make([]OutreachDetail, 0, len(records))
	for _, o := range records {
		out = append(out, OutreachDetail{
			Outreach:     o,
			Contact:      lookup(contacts, o.ContactID),
			Organization: lookup(orgs, o.OrganizationID),
		})
	}
	return out
}

// joinCalls attaches experts to calls and sorts by date then time as plain
// strings.
func joinCalls(calls []model.Call, experts map[uuid.UUID]model.Expert) []CallDetail {
	out := make([]CallDetail, 0, len(calls))
	for _, c := range calls {
		out = append(out, CallDetail{Call: c, Expert: lookup(experts, c.ExpertID)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}
