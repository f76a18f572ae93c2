package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// GeographicScope is the market reach of a business.
type GeographicScope string

// Supported geographic scopes.
const (
	ScopeLocal    GeographicScope = "Local"
	ScopeNational GeographicScope = "National"
	ScopeGlobal   GeographicScope = "Global"
)

// VisualStyle is the optional visual direction preference.
type VisualStyle string

// Supported visual styles.
const (
	VisualStyleMinimalist VisualStyle = "Minimalist"
	VisualStyleBold       VisualStyle = "Bold"
	VisualStylePlayful    VisualStyle = "Playful"
	VisualStyleClassic    VisualStyle = "Classic"
)

// ColorIntensity is the optional palette saturation preference.
type ColorIntensity string

// Supported color intensities.
const (
	ColorIntensitySoft     ColorIntensity = "Soft"
	ColorIntensityBalanced ColorIntensity = "Balanced"
	ColorIntensityVibrant  ColorIntensity = "Vibrant"
)

// BrandInputs is the business description submitted by a user. It is passed by
// value into generation and never mutated there.
//
// Only BusinessName and Offering are required to be non-empty. Every other
// required field may be an empty string but is always serialized as a key.
type BrandInputs struct {
	BusinessName           string          `json:"businessName"           validate:"required,max=200"`
	Offering               string          `json:"offering"               validate:"required,max=2000"`
	Industry               string          `json:"industry"               validate:"max=200"`
	Scope                  GeographicScope `json:"scope"                  validate:"omitempty,oneof=Local National Global"`
	AudienceDemographics   string          `json:"audienceDemographics"   validate:"max=2000"`
	AudiencePsychographics string          `json:"audiencePsychographics" validate:"max=2000"`
	AudienceNeeds          string          `json:"audienceNeeds"          validate:"max=2000"`
	BrandValues            string          `json:"brandValues"            validate:"max=2000"`
	BrandTones             string          `json:"brandTones"             validate:"max=2000"`
	Differentiation        string          `json:"differentiation"        validate:"max=2000"`
	VisualStyle            VisualStyle     `json:"visualStyle,omitempty"    validate:"omitempty,oneof=Minimalist Bold Playful Classic"`
	ColorIntensity         ColorIntensity  `json:"colorIntensity,omitempty" validate:"omitempty,oneof=Soft Balanced Vibrant"`
}

var inputValidator = newInputValidator()

// newInputValidator creates a validator that reports fields by their JSON name,
// so errors line up with what the client actually sent.
func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the inputs are complete enough for a generation call.
// Returns an error wrapping ErrValidation that names the offending field.
func (in BrandInputs) Validate() error {
	if strings.TrimSpace(in.BusinessName) == "" {
		return fmt.Errorf("%w: businessName: %w", ErrValidation, ErrEmptyBusinessName)
	}
	if strings.TrimSpace(in.Offering) == "" {
		return fmt.Errorf("%w: offering: %w", ErrValidation, ErrEmptyOffering)
	}

	if err := inputValidator.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on the '%s' rule", ErrValidation, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return nil
}
