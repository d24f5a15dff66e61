package types

// Link is an outbound deep link ready for navigation.
type Link struct {
	Action        Action        `json:"action"`
	URL           string        `json:"url"`
	CorrelationID CorrelationID `json:"correlation_id,omitempty"`
}

// Empty reports whether no navigation is required.
func (l Link) Empty() bool { return l.URL == "" }
