// Package funnel reverse-calculates the volumes an outbound campaign needs
// at each stage to book a target number of meetings.
package funnel

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outbound-cli/internal/rates"
)

// ErrInvalidTarget is returned when the meetings target is not positive.
var ErrInvalidTarget = eris.New("funnel: meetings target must be positive")

// Volumes holds the unrounded stage volumes. Pricing rounds from these so
// that rounding happens once, at the point of use.
type Volumes struct {
	Meetings           float64 `json:"meetings"`
	QualifiedReplies   float64 `json:"qualified_replies"`
	TotalReplies       float64 `json:"total_replies"`
	EmailsDelivered    float64 `json:"emails_delivered"`
	ValidEmailsNeeded  float64 `json:"valid_emails_needed"`
	ContactsWithEmails float64 `json:"contacts_with_emails"`
	LeadsToSource      float64 `json:"leads_to_source"`
}

// Stages are the volumes rounded up to whole contacts. Meetings is the
// target passed through unrounded.
type Stages struct {
	LeadsToSource            int     `json:"leads_to_source"`
	ContactsWithEmails       int     `json:"contacts_with_emails"`
	ValidEmailsNeeded        int     `json:"valid_emails_needed"`
	EmailsToSend             int     `json:"emails_to_send"`
	ExpectedReplies          int     `json:"expected_replies"`
	ExpectedQualifiedReplies int     `json:"expected_qualified_replies"`
	ExpectedMeetings         float64 `json:"expected_meetings"`
}

// Reverse divides the meetings target back through each conversion rate.
// The rate set is validated first so no stage can be Inf or NaN.
func Reverse(meetings float64, set rates.Set) (Volumes, error) {
	if math.IsNaN(meetings) || math.IsInf(meetings, 0) || meetings <= 0 {
		return Volumes{}, ErrInvalidTarget
	}
	if err := set.Validate(); err != nil {
		return Volumes{}, err
	}

	v := Volumes{Meetings: meetings}
	v.QualifiedReplies = v.Meetings / set.MeetingSetRate
	v.TotalReplies = v.QualifiedReplies / set.QualifiedReplyRate
	v.EmailsDelivered = v.TotalReplies / set.ReplyRate
	v.ValidEmailsNeeded = v.EmailsDelivered / set.DeliverabilityRate
	v.ContactsWithEmails = v.ValidEmailsNeeded / set.EmailFindRate
	v.LeadsToSource = v.ContactsWithEmails / set.PostEnrichmentValidRate
	return v, nil
}

// Forward multiplies a sourced lead count down the funnel. It is the
// inverse of Reverse up to floating point error.
func Forward(leads float64, set rates.Set) Volumes {
	v := Volumes{LeadsToSource: leads}
	v.ContactsWithEmails = v.LeadsToSource * set.PostEnrichmentValidRate
	v.ValidEmailsNeeded = v.ContactsWithEmails * set.EmailFindRate
	v.EmailsDelivered = v.ValidEmailsNeeded * set.DeliverabilityRate
	v.TotalReplies = v.EmailsDelivered * set.ReplyRate
	v.QualifiedReplies = v.TotalReplies * set.QualifiedReplyRate
	v.Meetings = v.QualifiedReplies * set.MeetingSetRate
	return v
}

// Rounded returns the stage volumes rounded up.
func (v Volumes) Rounded() Stages {
	return Stages{
		LeadsToSource:            Ceil(v.LeadsToSource),
		ContactsWithEmails:       Ceil(v.ContactsWithEmails),
		ValidEmailsNeeded:        Ceil(v.ValidEmailsNeeded),
		EmailsToSend:             Ceil(v.EmailsDelivered),
		ExpectedReplies:          Ceil(v.TotalReplies),
		ExpectedQualifiedReplies: Ceil(v.QualifiedReplies),
		ExpectedMeetings:         v.Meetings,
	}
}

// Ceil rounds x up to an int. Values within 1e-9 of an integer snap to it
// so 100/0.5/0.2 style chains don't round 1000.0000000001 up to 1001.
func Ceil(x float64) int {
	if r := math.Round(x); math.Abs(x-r) < 1e-9 {
		return int(r)
	}
	return int(math.Ceil(x))
}
