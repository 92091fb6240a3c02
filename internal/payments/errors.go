package payments

// ValidationError means the buyer's input was malformed. It is raised before
// any provider call is made.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// CustomerError means the provider rejected the customer lookup or upsert.
// No payment intent is attempted after one.
type CustomerError struct {
	Message string
	Detail  string
}

func (e CustomerError) Error() string { return e.Message }

// CardError means the charge was declined.
type CardError struct {
	Message string
	Detail  string
}

func (e CardError) Error() string { return e.Message }

// InvalidRequestError means the provider considered the intent request
// malformed.
type InvalidRequestError struct {
	Message string
	Detail  string
}

func (e InvalidRequestError) Error() string { return e.Message }

// ProviderError covers every other provider failure.
type ProviderError struct {
	Message string
	Detail  string
}

func (e ProviderError) Error() string { return e.Message }
