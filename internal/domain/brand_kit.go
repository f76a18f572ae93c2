package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FontRole is the typographic role a font plays in the kit.
type FontRole string

// Closed set of font roles.
const (
	FontRoleHeading FontRole = "heading"
	FontRoleBody    FontRole = "body"
	FontRoleAccent  FontRole = "accent"
)

// ColorToken is a single palette entry. Hex is always "#RRGGBB".
type ColorToken struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Usage string `json:"usage"`
}

// FontToken is a typography choice for one role.
type FontToken struct {
	Role     FontRole `json:"role"`
	Name     string   `json:"name"`
	Fallback string   `json:"fallback"`
	Sample   string   `json:"sample"`
}

// LogoConcept describes a logo direction in words.
type LogoConcept struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
}

// Mockup describes a social or collateral application of the brand.
type Mockup struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ChannelRecommendation is a marketing channel and why it fits.
type ChannelRecommendation struct {
	Channel string `json:"channel"`
	Reason  string `json:"reason"`
}

// CampaignDirection is a high-level campaign idea.
type CampaignDirection struct {
	Title            string `json:"title"`
	Concept          string `json:"concept"`
	SuggestedVisuals string `json:"suggestedVisuals"`
}

// SampleLogo is an extended-profile logo sketch.
type SampleLogo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Style       string `json:"style"`
}

// TypographySystem is an extended-profile pairing of fonts.
type TypographySystem struct {
	Name        string `json:"name"`
	HeadingFont string `json:"headingFont"`
	BodyFont    string `json:"bodyFont"`
	AccentFont  string `json:"accentFont"`
	Usage       string `json:"usage"`
}

// PosterSample is an extended-profile poster concept.
type PosterSample struct {
	Title       string `json:"title"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

// SocialPostSample is an extended-profile social post draft.
type SocialPostSample struct {
	Platform          string `json:"platform"`
	Caption           string `json:"caption"`
	VisualDescription string `json:"visualDescription"`
}

// BrandKitPreview is the minimal generated artifact used for quick iteration.
// Previews are never persisted and carry no identity.
type BrandKitPreview struct {
	Colors             []ColorToken `json:"colors"`
	Fonts              []FontToken  `json:"fonts"`
	LogoPlaceholder    LogoConcept  `json:"logoPlaceholder"`
	TaglineSuggestions []string     `json:"taglineSuggestions"`
}

// BrandKitContent is everything the model produces in full mode. It has no
// id or timestamp: those are attached at assembly time.
type BrandKitContent struct {
	BrandKitPreview

	BrandVoiceDescription    string                  `json:"brandVoiceDescription"`
	SocialMockups            []Mockup                `json:"socialMockups"`
	CollateralMockups        []Mockup                `json:"collateralMockups"`
	WebsiteHeaderDescription string                  `json:"websiteHeaderDescription"`
	RecommendedChannels      []ChannelRecommendation `json:"recommendedChannels"`
	CampaignDirections       []CampaignDirection     `json:"campaignDirections"`
	NextSteps                []string                `json:"nextSteps"`

	// Extended profile only.
	SampleLogos       []SampleLogo       `json:"sampleLogos,omitempty"`
	SampleTypography  []TypographySystem `json:"sampleTypography,omitempty"`
	SamplePosters     []PosterSample     `json:"samplePosters,omitempty"`
	SampleSocialPosts []SocialPostSample `json:"sampleSocialPosts,omitempty"`
}

// BrandKitFull is a complete, persisted brand kit. It serializes as a single
// flat JSON object: id and createdAt alongside the generated content.
type BrandKitFull struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	BrandKitContent
}

// Validate checks the invariants a stored kit must satisfy.
func (k *BrandKitFull) Validate() error {
	if k.ID == uuid.Nil {
		return ErrInvalidKitID
	}
	if k.CreatedAt.IsZero() {
		return fmt.Errorf("%w: createdAt cannot be zero", ErrValidation)
	}
	return nil
}
