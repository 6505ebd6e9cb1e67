package auth

import "errors"

// ErrCredentialsTaken is returned on signup when the email is already registered.
// Registration intentionally reveals that the email exists; sign-in does not.
var ErrCredentialsTaken = errors.New("Credentials taken")

// ErrCredentialsIncorrect covers both unknown-email and wrong-password on
// sign-in. The two branches must stay indistinguishable to the caller.
var ErrCredentialsIncorrect = errors.New("Credentials incorrect")

// ErrGenAccessToken is returned when we cannot create a JWT.
var ErrGenAccessToken = errors.New("failed to generate access token")
