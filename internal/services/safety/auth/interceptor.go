package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
	"github.com/festsafe/festsafe/internal/platform/requestctx"
)

const (
	authorizationHeader = "authorization"
	bearerPrefix        = "bearer "
	localeHeader        = "accept-language"
	healthMethodPrefix  = "/grpc.health.v1.Health/"
)

// UnaryServerInterceptor verifies the caller's access grant and threads the
// grant subject and request locale through context. Health checks pass
// without a grant. Errors leaving the handler are translated to gRPC status
// with a localized user message.
func UnaryServerInterceptor(cfg AccessGrantConfig) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, healthMethodPrefix) {
			return handler(ctx, req)
		}

		locale := metadataValue(ctx, localeHeader)
		if locale != "" {
			ctx = requestctx.WithLocale(ctx, locale)
		}

		claims, err := VerifyAccessGrant(bearerGrant(ctx), cfg)
		if err != nil {
			return nil, apperrors.HandleError(err, locale)
		}
		ctx = requestctx.WithUserID(ctx, claims.UserID)

		resp, err := handler(ctx, req)
		if err != nil {
			return nil, apperrors.HandleError(err, locale)
		}
		return resp, nil
	}
}

// bearerGrant extracts the token from an "Authorization: Bearer" header.
func bearerGrant(ctx context.Context) string {
	value := metadataValue(ctx, authorizationHeader)
	if len(value) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(value[len(bearerPrefix):])
}

func metadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
