package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func voiceCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
	return context.WithValue(ctx, runtime.RUNTIME_CTX_ENV, map[string]string{
		"voice_secret": "test-secret",
		"voice_issuer": "issuer",
		"voice_domain": "example.com",
	})
}

func parseVoiceToken(t *testing.T, raw string) jwt.MapClaims {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	return claims
}

func TestRpcVoiceTokenLogin(t *testing.T) {
	raw, err := rpcVoiceToken(voiceCtx("user123"), noopLogger{}, nil, nil, `{"action":"login"}`)
	if err != nil {
		t.Fatalf("rpcVoiceToken error: %v", err)
	}

	claims := parseVoiceToken(t, raw)
	if claims["iss"] != "issuer" {
		t.Errorf("iss = %v, want issuer", claims["iss"])
	}
	if claims["sub"] != "user123" {
		t.Errorf("sub = %v, want user123", claims["sub"])
	}
	if claims["vxa"] != "login" {
		t.Errorf("vxa = %v, want login", claims["vxa"])
	}
	if claims["f"] != "sip:.issuer.user123.@example.com" {
		t.Errorf("f = %v", claims["f"])
	}
}

func TestRpcVoiceTokenJoinRequiresChannel(t *testing.T) {
	if _, err := rpcVoiceToken(voiceCtx("user123"), noopLogger{}, nil, nil, `{"action":"join"}`); err == nil {
		t.Fatalf("join without channel accepted")
	}

	raw, err := rpcVoiceToken(voiceCtx("user123"), noopLogger{}, nil, nil, `{"action":"join","channel":"match-1"}`)
	if err != nil {
		t.Fatalf("rpcVoiceToken error: %v", err)
	}
	claims := parseVoiceToken(t, raw)
	if claims["t"] != "sip:confctl-g-match-1@example.com" {
		t.Errorf("t = %v", claims["t"])
	}
}

func TestRpcVoiceTokenRequiresUser(t *testing.T) {
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, map[string]string{
		"voice_secret": "test-secret",
		"voice_issuer": "issuer",
		"voice_domain": "example.com",
	})
	if _, err := rpcVoiceToken(ctx, noopLogger{}, nil, nil, `{"action":"login"}`); err == nil {
		t.Fatalf("missing user accepted")
	}
}
