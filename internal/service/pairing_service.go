package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
)

// PairingService hands out short-lived numeric codes that bind a signature
// capture device to a checkout session. Codes live in Redis with a TTL, so a
// restart or expiry simply invalidates them; nothing is persisted.
type PairingService interface {
	CreateCode(ctx context.Context) (dto.PairingCodeResponse, error)
	Register(ctx context.Context, code, sessionID string) error
	Resolve(ctx context.Context, code string) (dto.PairingResolveResponse, error)
}

type pairingService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewPairingService constructs the pairing code store.
func NewPairingService(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) PairingService {
	return &pairingService{
		redis:  rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "pairing_service").Logger(),
	}
}

func pairingKey(code string) string {
	return "pairing:" + code
}

// CreateCode reserves a fresh 4-digit code. SetNX guards against handing the
// same code to two sessions; collisions retry a few times before giving up.
func (s *pairingService) CreateCode(ctx context.Context) (dto.PairingCodeResponse, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomPairingCode()
		if err != nil {
			return dto.PairingCodeResponse{}, err
		}

		ok, err := s.redis.SetNX(ctx, pairingKey(code), "", s.ttl).Result()
		if err != nil {
			return dto.PairingCodeResponse{}, err
		}
		if !ok {
			continue
		}

		s.logger.Debug().Str("code", code).Msg("pairing code issued")
		return dto.PairingCodeResponse{
			Code:      code,
			ExpiresAt: time.Now().UTC().Add(s.ttl),
		}, nil
	}
	return dto.PairingCodeResponse{}, fmt.Errorf("pairing code space exhausted")
}

// Register binds a device session to an outstanding code. The TTL is not
// extended: the code keeps its original deadline.
func (s *pairingService) Register(ctx context.Context, code, sessionID string) error {
	key := pairingKey(code)

	ttl, err := s.redis.TTL(ctx, key).Result()
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return ErrPairingNotFound
	}

	return s.redis.Set(ctx, key, sessionID, ttl).Err()
}

// Resolve looks up the session bound to a code. An unknown or expired code and
// a known-but-unregistered code are both reported distinctly.
func (s *pairingService) Resolve(ctx context.Context, code string) (dto.PairingResolveResponse, error) {
	sessionID, err := s.redis.Get(ctx, pairingKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return dto.PairingResolveResponse{}, ErrPairingNotFound
		}
		return dto.PairingResolveResponse{}, err
	}

	return dto.PairingResolveResponse{
		Code:      code,
		SessionID: sessionID,
		Paired:    sessionID != "",
	}, nil
}

func randomPairingCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
