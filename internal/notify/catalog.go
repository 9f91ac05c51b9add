// File: internal/notify/catalog.go
package notify

import "fmt"

// The catalog groups the notification templates by domain context. Every
// factory is pure: it builds a Message from its parameters and nothing else.
var (
	Auth    AuthMessages
	Form    FormMessages
	Profile ProfileMessages
	Account AccountMessages
	System  SystemMessages
	Data    DataMessages
	Payment PaymentMessages
)

// AuthMessages covers login, logout, registration and verification.
type AuthMessages struct{}

// LoginSuccess greets a user by name and sign-in location. The location is
// resolved from the provider's geo lookup before dispatch; see
// Dispatcher.DispatchLocated.
func (AuthMessages) LoginSuccess(name, location string) Message {
	return Message{
		Title:       fmt.Sprintf("Welcome back, %s", name),
		Description: fmt.Sprintf("You have logged in successfully from %s.", location),
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) LoginFailure() Message {
	return Message{
		Title:       "Login Failed",
		Description: "Invalid credentials. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) LogoutSuccess(name string) Message {
	return Message{
		Title:       fmt.Sprintf("Goodbye, %s", name),
		Description: "You have logged out successfully.",
		Status:      StatusInfo,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) RegistrationSuccess() Message {
	return Message{
		Title:       "Registration Successful",
		Description: "Your account has been created. Check your email to verify your address.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) RegistrationFailure() Message {
	return Message{
		Title:       "Registration Failed",
		Description: "There was an error creating your account. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) PasswordResetSuccess() Message {
	return Message{
		Title:       "Password Reset Successful",
		Description: "Your password has been reset successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) PasswordResetFailure() Message {
	return Message{
		Title:       "Password Reset Failed",
		Description: "There was an error resetting your password. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// SessionActive announces an existing session found on startup; like
// LoginSuccess, its location parameter comes from the geo lookup.
func (AuthMessages) SessionActive(name, location string) Message {
	return Message{
		Title:       "Session Active",
		Description: fmt.Sprintf("%s is currently logged in from %s.", name, location),
		Status:      StatusInfo,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) SessionInactive() Message {
	return Message{
		Title:       "Session Inactive",
		Description: "No active session found. Please log in.",
		Status:      StatusWarning,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) VerificationRequired(email string) Message {
	return Message{
		Title:       "Verify Your Email",
		Description: fmt.Sprintf("A verification link was sent to %s. Please verify your address before logging in.", email),
		Status:      StatusWarning,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) VerificationSuccess() Message {
	return Message{
		Title:       "Email Verified",
		Description: "Your email has been verified successfully. You can now log in.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (AuthMessages) VerificationFailure(reason string) Message {
	return Message{
		Title:       "Email Verification Failed",
		Description: fmt.Sprintf("%s. Please check your verification link or contact support.", reason),
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// FormMessages covers client-side form validation outcomes.
type FormMessages struct{}

func (FormMessages) InvalidInput(field string) Message {
	return Message{
		Title:       "Invalid Input",
		Description: fmt.Sprintf("The %s you entered is invalid. Please try again.", field),
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (FormMessages) RequiredField(field string) Message {
	return Message{
		Title:       "Required Field",
		Description: fmt.Sprintf("The %s is required.", field),
		Status:      StatusWarning,
		Toast:       true,
		Log:         true,
	}
}

func (FormMessages) SubmissionSuccess() Message {
	return Message{
		Title:       "Form Submitted",
		Description: "Your form has been submitted successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (FormMessages) SubmissionError() Message {
	return Message{
		Title:       "Submission Failed",
		Description: "There was an error submitting your form. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (FormMessages) PasswordMismatch() Message {
	return Message{
		Title:       "Password Mismatch",
		Description: "Passwords do not match. Please re-enter your password.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (FormMessages) EmailFormatInvalid() Message {
	return Message{
		Title:       "Invalid Email Format",
		Description: "Please enter a valid email address.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// ProfileMessages covers profile attribute updates.
type ProfileMessages struct{}

func (ProfileMessages) UpdateSuccess() Message {
	return Message{
		Title:       "Profile Updated",
		Description: "Your profile has been updated successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (ProfileMessages) UpdateFailure() Message {
	return Message{
		Title:       "Profile Update Failed",
		Description: "There was an error updating your profile. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// AccountMessages covers destructive account actions.
type AccountMessages struct{}

func (AccountMessages) DeactivateWarning() Message {
	return Message{
		Title:       "Are you sure?",
		Description: "Deactivating your account will permanently remove access to all your data.",
		Status:      StatusWarning,
		Modal:       true,
		Log:         true,
	}
}

func (AccountMessages) DeactivateSuccess() Message {
	return Message{
		Title:       "Account Deactivated",
		Description: "Your account has been deactivated successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (AccountMessages) DeactivateFailure() Message {
	return Message{
		Title:       "Deactivation Failed",
		Description: "There was an error deactivating your account. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// SystemMessages covers provider and network level failures.
type SystemMessages struct{}

func (SystemMessages) ServerError() Message {
	return Message{
		Title:       "Server Error",
		Description: "An unexpected error occurred. Please try again later.",
		Status:      StatusError,
		Modal:       true,
		Log:         true,
	}
}

func (SystemMessages) NetworkError() Message {
	return Message{
		Title:       "Network Error",
		Description: "Unable to connect to the server. Please check your internet connection.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (SystemMessages) RateLimited() Message {
	return Message{
		Title:       "Too Many Attempts",
		Description: "You have made too many attempts. Please wait a moment and try again.",
		Status:      StatusWarning,
		Toast:       true,
		Log:         true,
	}
}

// SessionConflict is shown as a modal: the user must decide what to do with
// the session that is already in progress.
func (SystemMessages) SessionConflict() Message {
	return Message{
		Title:       "Session In Progress",
		Description: "Another session is already active. Log out before starting a new one.",
		Status:      StatusWarning,
		Modal:       true,
		Log:         true,
	}
}

func (SystemMessages) OperationSuccess() Message {
	return Message{
		Title:       "Operation Successful",
		Description: "The operation was completed successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (SystemMessages) OperationFailure() Message {
	return Message{
		Title:       "Operation Failed",
		Description: "There was an issue completing the operation. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// DataMessages covers generic data save/delete outcomes.
type DataMessages struct{}

func (DataMessages) SaveSuccess() Message {
	return Message{
		Title:       "Data Saved",
		Description: "Your data has been saved successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (DataMessages) SaveFailure() Message {
	return Message{
		Title:       "Data Save Failed",
		Description: "There was an error saving your data. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (DataMessages) DeleteSuccess() Message {
	return Message{
		Title:       "Data Deleted",
		Description: "Your data has been deleted successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (DataMessages) DeleteFailure() Message {
	return Message{
		Title:       "Data Deletion Failed",
		Description: "There was an error deleting your data. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

// PaymentMessages covers marketplace transaction outcomes.
type PaymentMessages struct{}

func (PaymentMessages) PaymentSuccess() Message {
	return Message{
		Title:       "Payment Successful",
		Description: "Your payment has been processed successfully.",
		Status:      StatusSuccess,
		Toast:       true,
		Log:         true,
	}
}

func (PaymentMessages) PaymentFailure() Message {
	return Message{
		Title:       "Payment Failed",
		Description: "There was an issue processing your payment. Please try again.",
		Status:      StatusError,
		Toast:       true,
		Log:         true,
	}
}

func (PaymentMessages) InsufficientFunds() Message {
	return Message{
		Title:       "Insufficient Funds",
		Description: "You do not have enough funds to complete this transaction.",
		Status:      StatusWarning,
		Toast:       true,
		Log:         true,
	}
}
