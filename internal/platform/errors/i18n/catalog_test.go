package i18n

import (
	"strings"
	"testing"
)

func TestGetCatalogBaseLocale(t *testing.T) {
	c := GetCatalog("en-US")
	if c.Locale() != BaseLocale {
		t.Fatalf("locale = %q, want %q", c.Locale(), BaseLocale)
	}
}

func TestGetCatalogFallsBackOnUnknown(t *testing.T) {
	for _, locale := range []string{"", "xx-ZZ", "not a locale"} {
		c := GetCatalog(locale)
		if c.Locale() != BaseLocale {
			t.Fatalf("GetCatalog(%q).Locale() = %q, want %q", locale, c.Locale(), BaseLocale)
		}
	}
}

func TestGetCatalogMatchesLanguageVariant(t *testing.T) {
	// en-GB has no dedicated catalog but should match the en-US base.
	c := GetCatalog("en-GB")
	if c.Locale() != BaseLocale {
		t.Fatalf("locale = %q, want %q", c.Locale(), BaseLocale)
	}
}

func TestFormatWithMetadata(t *testing.T) {
	c := GetCatalog(BaseLocale)
	msg := c.Format(CodeEventNameTooShort, map[string]string{"Min": "2"})
	if !strings.Contains(msg, "2") {
		t.Fatalf("expected templated minimum in message, got %q", msg)
	}
}

func TestFormatWithoutMetadata(t *testing.T) {
	c := GetCatalog(BaseLocale)
	msg := c.Format(CodeReportNotOpen, nil)
	if msg == "" || msg == string(CodeReportNotOpen) {
		t.Fatalf("expected rendered message, got %q", msg)
	}
	if strings.Contains(msg, "status=") {
		t.Fatalf("expected optional status section omitted, got %q", msg)
	}
}

func TestFormatUnknownCodeFallsBackToCode(t *testing.T) {
	c := GetCatalog(BaseLocale)
	if msg := c.Format("NO_SUCH_CODE", nil); msg != "NO_SUCH_CODE" {
		t.Fatalf("expected code fallback, got %q", msg)
	}
}

func TestBaseCatalogCoversAllCodes(t *testing.T) {
	codes := []Code{
		CodeAuthGrantInvalid, CodeAuthGrantExpired, CodeCallerRequired,
		CodeEventNameTooShort, CodeEventEmptyID, CodeEventWindowInvalid,
		CodeMemberInvalidRole, CodeMembershipRequired, CodeOrganizerRequired,
		CodeInviteInvalidRole, CodeInviteInvalidMaxUses, CodeInviteCodeRequired,
		CodeInviteInactive, CodeInviteUsesExhausted, CodeInviteCodeSpaceExhausted,
		CodeReportDescriptionRequired, CodeReportInvalidUrgency, CodeReportInvalidCategory,
		CodeReportInvalidLocationMode, CodeReportInvalidContactMethod,
		CodeReportInvalidStatus,
		CodeReportResolutionRequired, CodeReportNotOpen, CodeReportAlreadyClosed,
		CodeReportNotClaimant,
		CodeMessageTextRequired, CodeMessageNotReportOwner,
		CodeNotFound,
	}
	for _, code := range codes {
		if _, ok := messagesEnUS[code]; !ok {
			t.Fatalf("missing en-US message for code %q", code)
		}
	}
}
