package deps

import (
	"time"

	"github.com/and161185/payform/internal/csrf"
	"go.uber.org/zap"
)

type Deps struct {
	Logger       *zap.SugaredLogger
	TokenManager *csrf.TokenManager
}

func NewDependencies(logger *zap.SugaredLogger, csrfKey string, csrfTTL time.Duration) *Deps {
	return &Deps{Logger: logger, TokenManager: csrf.NewTokenManager(csrfKey, csrfTTL)}
}
