package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/chaimtop/studygo/core"
)

var (
	phoneSourceTag  = "phone_or_encrypted"
	phoneSourceText = "one of phone or encryptedData+iv is required"
)

func init() {
	// register validators
	core.Validate.RegisterStructValidation(bindPhoneStructValidation, BindPhoneInput{})
	core.RegisterCustomTranslation(phoneSourceTag, phoneSourceText)
}

// bindPhoneStructValidation enforces that a bind request carries either a raw
// phone number or the platform-encrypted payload.
func bindPhoneStructValidation(sl validator.StructLevel) {
	in := sl.Current().Interface().(BindPhoneInput)
	if in.Phone == "" && (in.EncryptedData == "" || in.IV == "") {
		sl.ReportError(in.Phone, "phone", "Phone", phoneSourceTag, "")
	}
}
