package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/platform/requestctx"
)

func grantContext(grant string) context.Context {
	md := metadata.Pairs(authorizationHeader, "Bearer "+grant)
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestUnaryServerInterceptorInjectsUserID(t *testing.T) {
	pub, priv := testKeyPair(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	grant := signGrant(t, priv, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Audience:  jwt.ClaimStrings{testAudience},
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})

	intercept := UnaryServerInterceptor(testConfig(pub, now))
	info := &grpc.UnaryServerInfo{FullMethod: "/festsafe.safety.v1.SafetyService/GetEvent"}

	var sawUserID string
	resp, err := intercept(grantContext(grant), "req", info, func(ctx context.Context, req any) (any, error) {
		sawUserID = requestctx.UserIDFromContext(ctx)
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("expected handler response, got %v", resp)
	}
	if sawUserID != "user-42" {
		t.Fatalf("expected user-42 in context, got %q", sawUserID)
	}
}

func TestUnaryServerInterceptorRejectsMissingGrant(t *testing.T) {
	pub, _ := testKeyPair(t)
	intercept := UnaryServerInterceptor(testConfig(pub, time.Now()))
	info := &grpc.UnaryServerInfo{FullMethod: "/festsafe.safety.v1.SafetyService/GetEvent"}

	called := false
	_, err := intercept(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		called = true
		return nil, nil
	})
	if called {
		t.Fatal("handler must not run without a grant")
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected gRPC status, got %v", err)
	}
	if st.Code() != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %s", st.Code())
	}
}

func TestUnaryServerInterceptorSkipsHealthChecks(t *testing.T) {
	pub, _ := testKeyPair(t)
	intercept := UnaryServerInterceptor(testConfig(pub, time.Now()))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := intercept(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "serving", nil
	})
	if err != nil {
		t.Fatalf("health check should skip auth: %v", err)
	}
	if resp != "serving" {
		t.Fatalf("expected handler response, got %v", resp)
	}
}

func TestUnaryServerInterceptorTranslatesHandlerErrors(t *testing.T) {
	pub, priv := testKeyPair(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	grant := signGrant(t, priv, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Audience:  jwt.ClaimStrings{testAudience},
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})

	intercept := UnaryServerInterceptor(testConfig(pub, now))
	info := &grpc.UnaryServerInfo{FullMethod: "/festsafe.safety.v1.SafetyService/ClaimReport"}

	_, err := intercept(grantContext(grant), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, apperrors.New(apperrors.CodeReportNotOpen, "report is not open")
	})
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected gRPC status, got %v", err)
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %s", st.Code())
	}
}

func TestBearerGrantParsing(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"missing scheme", "abc.def.ghi", ""},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.header != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(authorizationHeader, tc.header))
			}
			if got := bearerGrant(ctx); got != tc.want {
				t.Fatalf("bearerGrant(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
