// Package rates holds the funnel conversion-rate assumptions used to
// reverse-calculate outbound campaign volumes.
package rates

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// Rate identifiers, in funnel order from meetings back to sourcing.
const (
	MeetingSet          = "meeting_set_rate"
	QualifiedReply      = "qualified_reply_rate"
	Reply               = "reply_rate"
	Deliverability      = "deliverability_rate"
	EmailFind           = "email_find_rate"
	PostEnrichmentValid = "post_enrichment_valid_rate"
)

// ErrInvalidRate is matched by every InvalidRateError via errors.Is.
var ErrInvalidRate = eris.New("rates: invalid rate")

// InvalidRateError identifies the rate that failed validation.
type InvalidRateError struct {
	Rate  string
	Value float64
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("rates: %s must be in (0, 1], got %v", e.Rate, e.Value)
}

// Is reports whether target is ErrInvalidRate.
func (e *InvalidRateError) Is(target error) bool {
	return target == ErrInvalidRate
}

// Set is the six multipliers of the outbound funnel. Each is a probability
// in (0, 1].
type Set struct {
	MeetingSetRate          float64 `json:"meeting_set_rate" yaml:"meeting_set_rate" mapstructure:"meeting_set_rate"`
	QualifiedReplyRate      float64 `json:"qualified_reply_rate" yaml:"qualified_reply_rate" mapstructure:"qualified_reply_rate"`
	ReplyRate               float64 `json:"reply_rate" yaml:"reply_rate" mapstructure:"reply_rate"`
	DeliverabilityRate      float64 `json:"deliverability_rate" yaml:"deliverability_rate" mapstructure:"deliverability_rate"`
	EmailFindRate           float64 `json:"email_find_rate" yaml:"email_find_rate" mapstructure:"email_find_rate"`
	PostEnrichmentValidRate float64 `json:"post_enrichment_valid_rate" yaml:"post_enrichment_valid_rate" mapstructure:"post_enrichment_valid_rate"`
}

// Named returns the rates paired with their identifiers, in funnel order.
func (s Set) Named() []NamedRate {
	return []NamedRate{
		{MeetingSet, s.MeetingSetRate},
		{QualifiedReply, s.QualifiedReplyRate},
		{Reply, s.ReplyRate},
		{Deliverability, s.DeliverabilityRate},
		{EmailFind, s.EmailFindRate},
		{PostEnrichmentValid, s.PostEnrichmentValidRate},
	}
}

// NamedRate is one rate with its identifier.
type NamedRate struct {
	ID    string
	Value float64
}

// Validate returns an *InvalidRateError for the first rate outside (0, 1].
func (s Set) Validate() error {
	for _, r := range s.Named() {
		if math.IsNaN(r.Value) || r.Value <= 0 || r.Value > 1 {
			return &InvalidRateError{Rate: r.ID, Value: r.Value}
		}
	}
	return nil
}

// With returns s with the rate identified by id set to v. It reports false
// for an unknown id.
func (s Set) With(id string, v float64) (Set, bool) {
	switch id {
	case MeetingSet:
		s.MeetingSetRate = v
	case QualifiedReply:
		s.QualifiedReplyRate = v
	case Reply:
		s.ReplyRate = v
	case Deliverability:
		s.DeliverabilityRate = v
	case EmailFind:
		s.EmailFindRate = v
	case PostEnrichmentValid:
		s.PostEnrichmentValidRate = v
	default:
		return s, false
	}
	return s, true
}
