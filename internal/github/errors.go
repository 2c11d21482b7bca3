package github

import "fmt"

// Kind classifies fetch failures. The loop treats them all the same way
// (abort the cycle, keep the snapshot) but logs and tests distinguish them.
type Kind int

const (
	KindNetwork Kind = iota
	KindAuth
	KindNotFound
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindRateLimited:
		return "rate limited"
	default:
		return "network"
	}
}

type FetchError struct {
	Kind    Kind
	Status  int
	Message string

	cause error
}

func (e *FetchError) Error() string {
	switch {
	case e.cause != nil:
		return fmt.Sprintf("github: %s: %v", e.Kind, e.cause)
	case e.Message != "":
		return fmt.Sprintf("github: %s (status %d): %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("github: %s (status %d)", e.Kind, e.Status)
	}
}

func (e *FetchError) Unwrap() error { return e.cause }
