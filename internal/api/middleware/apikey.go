package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Holdings-Backend/internal/logging"
)

// TimeTokenTTL is how long a generated time token is accepted.
const TimeTokenTTL = 5 * time.Minute

func fernetKey(apiKey string) *fernet.Key {
	k := fernet.Key(sha256.Sum256([]byte(apiKey)))
	return &k
}

// GenerateTimeToken returns a fernet token for apiKey stamped with the current
// time. Clients send it as X-Time-Token next to X-API-Key.
func GenerateTimeToken(apiKey string) string {
	token, err := fernet.EncryptAndSign([]byte(strconv.FormatInt(time.Now().Unix(), 10)), fernetKey(apiKey))
	if err != nil {
		return ""
	}
	return string(token)
}

// APIKeyMiddleware guards destructive routes. A request must carry apiKey in
// X-API-Key and a time token from GenerateTimeToken, younger than
// TimeTokenTTL, in X-Time-Token.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	keys := []*fernet.Key{fernetKey(apiKey)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				logging.FromContext(r.Context()).Error("admin API key is not configured")
				response.RespondError(w, http.StatusInternalServerError, "unauthorized", "Authentication not loaded")
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}

			token := r.Header.Get("X-Time-Token")
			if token == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
				return
			}
			if fernet.VerifyAndDecrypt([]byte(token), TimeTokenTTL, keys) == nil {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
