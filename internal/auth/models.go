package auth

// Form field ids. Field errors are keyed by these.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm-password"
	FieldSigninUsername  = "signin-username"
	FieldSigninPassword  = "signin-password"
)

// FieldErrors maps a form field id to the message shown under it.
type FieldErrors map[string]string

// SignupForm is the payload of the sign-up form.
type SignupForm struct {
	Name            string `json:"name" form:"username" validate:"min=3"`
	Email           string `json:"email" form:"email" validate:"shop_email"`
	Password        string `json:"password" form:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm-password" validate:"eqfield=Password"`
}

// SigninForm is the payload of the sign-in form.
type SigninForm struct {
	Email    string `json:"email" form:"signin-username" validate:"required"`
	Password string `json:"password" form:"signin-password" validate:"required"`
}

// State is the signed-in state of a browser session.
type State struct {
	Authenticated bool `json:"authenticated"`
}
