package status

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Status is the lifecycle state of an item, shipment, category or order.
//
// Item lifecycle:
//
//	Pending ──> Preparing ──> Ready ──> Delivered
//
// Orders additionally reach Canceled and the finalized values Paid and Delivered
// through explicit status changes only.
type Status int

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = iota

	// Pending is the initial status of every item and of an empty order.
	Pending

	// Preparing means the kitchen has started on the item.
	Preparing

	// Ready means the item is prepared and waiting to be served or shipped.
	Ready

	// Delivered means the item reached the customer. On an order it is finalized.
	Delivered

	// Canceled is an order-level status set by an operator.
	Canceled

	// Paid is the finalized order status set when the bill is settled.
	Paid
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown has no canonical token
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Delivered: "delivered",
		Canceled:  "canceled",
		Paid:      "paid",
	}
}

// canonicalOrder lists the tokens in the order the prefix rule tries them.
var canonicalOrder = []Status{Pending, Preparing, Ready, Delivered, Canceled, Paid}

// fuzzyRules are checked in order against the lower-cased input. The
// Portuguese stems keep accepting the tokens older kitchen clients still send.
var fuzzyRules = []struct {
	fragments []string
	status    Status
}{
	{[]string{"pend"}, Pending},
	{[]string{"prepar"}, Preparing},
	{[]string{"pront", "ready"}, Ready},
	{[]string{"entreg", "deliv"}, Delivered},
	{[]string{"cancel"}, Canceled},
	{[]string{"pag", "paid"}, Paid},
}

const minPrefixLength = 3

// Normalize maps a free-form status string to a canonical Status.
// It is total: empty and unrecognized input yield Pending.
//
// Example:
//
//	status.Normalize("Pronto")    // Ready
//	status.Normalize(" deliv ")   // Delivered
//	status.Normalize("can")       // Canceled
//	status.Normalize("whatever")  // Pending
func Normalize(raw string) Status {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return Pending
	}

	for _, rule := range fuzzyRules {
		for _, fragment := range rule.fragments {
			if strings.Contains(token, fragment) {
				return rule.status
			}
		}
	}

	if len(token) >= minPrefixLength {
		strs := getStatusStrings()
		for _, s := range canonicalOrder {
			if strings.HasPrefix(strs[s], token) {
				return s
			}
		}
	}

	return Pending
}

// Parse restores a canonical token exactly as String produced it.
// Repositories use it when loading rows; anything else must go through Normalize.
func Parse(token string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == token {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a canonical status", token),
	)
}

// Validate reports whether s is one of the canonical values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical lower-case token, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsDone reports whether the status counts as completed for aggregation.
func (s Status) IsDone() bool {
	return s == Ready || s == Delivered
}

// IsFinalized reports whether an order in this status is immutable.
func (s Status) IsFinalized() bool {
	return s == Paid || s == Delivered
}

// IsItemStatus reports whether an item may carry this status.
func (s Status) IsItemStatus() bool {
	return s == Pending || s == Preparing || s == Ready || s == Delivered
}

// MarshalText encodes the canonical token.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts canonical tokens only. Lenient input goes through Normalize.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
