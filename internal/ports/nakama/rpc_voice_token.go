package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"fivetakes/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcVoiceToken issues a signed voice-channel token for the calling user.
// Payload: {"action": "login" | "join", "channel": "<match id>"}
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("user required", 16) // UNAUTHENTICATED
	}

	var req struct {
		Action  string `json:"action"`
		Channel string `json:"channel"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["voice_secret"]
	issuer := env["voice_issuer"]
	domain := env["voice_domain"]
	if secret == "" || issuer == "" || domain == "" {
		logger.Warn("rpcVoiceToken: voice credentials missing from env")
		return "", runtime.NewError("voice chat not configured", 9) // FAILED_PRECONDITION
	}

	service := app.NewVoiceService(secret, issuer, domain)
	token, err := service.GenerateToken(userID, req.Action, req.Channel)
	if err != nil {
		logger.Error("rpcVoiceToken: failed to generate token: %v", err)
		return "", runtime.NewError("failed to generate token", 3)
	}

	res := map[string]string{"token": token}
	b, _ := json.Marshal(res)
	return string(b), nil
}
