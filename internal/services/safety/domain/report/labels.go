package report

import (
	"strings"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
)

// Urgency identifies how fast a report needs human attention.
type Urgency string

const (
	UrgencyUnspecified   Urgency = ""
	UrgencyEmergency     Urgency = "EMERGENCY"
	UrgencyNeedsHelpSoon Urgency = "NEEDS_HELP_SOON"
	UrgencyFYI           Urgency = "FYI"
)

// Category identifies what kind of incident a report describes.
type Category string

const (
	CategoryUnspecified    Category = ""
	CategoryMedical        Category = "MEDICAL"
	CategorySafetySecurity Category = "SAFETY_SECURITY"
	CategoryHarassment     Category = "HARASSMENT"
	CategoryAccessibility  Category = "ACCESSIBILITY"
	CategoryLostPerson     Category = "LOST_PERSON"
	CategoryLostItem       Category = "LOST_ITEM"
	CategoryFacility       Category = "FACILITY"
	CategoryOther          Category = "OTHER"
)

// LocationMode identifies how the report location was captured.
type LocationMode string

const (
	LocationModeUnspecified LocationMode = ""
	LocationModeCurrent     LocationMode = "CURRENT"
	LocationModePicked      LocationMode = "PICKED"
	LocationModeManual      LocationMode = "MANUAL"
)

// ContactMethod identifies how organizers should reach the reporter.
type ContactMethod string

const (
	ContactMethodUnspecified ContactMethod = ""
	ContactMethodInAppChat   ContactMethod = "IN_APP_CHAT"
	ContactMethodText        ContactMethod = "TEXT"
	ContactMethodCall        ContactMethod = "CALL"
	ContactMethodEmail       ContactMethod = "EMAIL"
)

// NormalizeUrgency parses an urgency label into a canonical value.
func NormalizeUrgency(value string) (Urgency, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "EMERGENCY":
		return UrgencyEmergency, nil
	case "NEEDS_HELP_SOON":
		return UrgencyNeedsHelpSoon, nil
	case "FYI":
		return UrgencyFYI, nil
	default:
		return UrgencyUnspecified, apperrors.New(apperrors.CodeReportInvalidUrgency, "report urgency is invalid")
	}
}

// NormalizeCategory parses a category label into a canonical value.
func NormalizeCategory(value string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "MEDICAL":
		return CategoryMedical, nil
	case "SAFETY_SECURITY":
		return CategorySafetySecurity, nil
	case "HARASSMENT":
		return CategoryHarassment, nil
	case "ACCESSIBILITY":
		return CategoryAccessibility, nil
	case "LOST_PERSON":
		return CategoryLostPerson, nil
	case "LOST_ITEM":
		return CategoryLostItem, nil
	case "FACILITY":
		return CategoryFacility, nil
	case "OTHER":
		return CategoryOther, nil
	default:
		return CategoryUnspecified, apperrors.New(apperrors.CodeReportInvalidCategory, "report category is invalid")
	}
}

// NormalizeLocationMode parses a location mode label into a canonical value.
func NormalizeLocationMode(value string) (LocationMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "CURRENT":
		return LocationModeCurrent, nil
	case "PICKED":
		return LocationModePicked, nil
	case "MANUAL":
		return LocationModeManual, nil
	default:
		return LocationModeUnspecified, apperrors.New(apperrors.CodeReportInvalidLocationMode, "report location mode is invalid")
	}
}

// NormalizeContactMethod parses a contact method label into a canonical value.
func NormalizeContactMethod(value string) (ContactMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "IN_APP_CHAT":
		return ContactMethodInAppChat, nil
	case "TEXT":
		return ContactMethodText, nil
	case "CALL":
		return ContactMethodCall, nil
	case "EMAIL":
		return ContactMethodEmail, nil
	default:
		return ContactMethodUnspecified, apperrors.New(apperrors.CodeReportInvalidContactMethod, "report contact method is invalid")
	}
}
