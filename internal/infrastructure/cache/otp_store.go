package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
)

var _ auth.OTPStore = (*OTPStore)(nil)

const (
	otpPrefix = "stockmaster:otp"
	// MaxOTPAttempts intentos fallidos antes de descartar el OTP vigente.
	MaxOTPAttempts = 5
)

// OTPStore OTPs de restablecimiento en Redis: hash bcrypt con TTL, marca de
// enfriamiento por email y contador de intentos fallidos.
type OTPStore struct {
	rdb      redis.UniversalClient
	ttl      time.Duration
	cooldown time.Duration
}

// NewOTPStore construye el store.
func NewOTPStore(rdb redis.UniversalClient, ttl, cooldown time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, ttl: ttl, cooldown: cooldown}
}

// Save reserva el enfriamiento con SET NX y luego guarda el hash, reiniciando los intentos.
func (s *OTPStore) Save(ctx context.Context, email, hash string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, otpKey("cooldown", email), 1, s.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx otp: %w", err)
	}
	if !ok {
		return false, nil
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, otpKey("code", email), hash, s.ttl)
		p.Del(ctx, otpKey("attempts", email))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis set otp: %w", err)
	}
	return true, nil
}

// Get devuelve el hash vigente.
func (s *OTPStore) Get(ctx context.Context, email string) (string, bool, error) {
	hash, err := s.rdb.Get(ctx, otpKey("code", email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get otp: %w", err)
	}
	return hash, true, nil
}

// Consume borra el OTP; solo una verificación concurrente obtiene true.
func (s *OTPStore) Consume(ctx context.Context, email string) (bool, error) {
	n, err := s.rdb.Del(ctx, otpKey("code", email)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del otp: %w", err)
	}
	if n == 1 {
		_ = s.rdb.Del(ctx, otpKey("attempts", email)).Err()
	}
	return n == 1, nil
}

// RegisterFailure incrementa los intentos; al llegar a MaxOTPAttempts descarta el OTP.
func (s *OTPStore) RegisterFailure(ctx context.Context, email string) error {
	key := otpKey("attempts", email)
	attempts, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis incr intentos otp: %w", err)
	}
	if attempts == 1 {
		if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("redis expire intentos otp: %w", err)
		}
	}
	if attempts >= MaxOTPAttempts {
		if err := s.rdb.Del(ctx, otpKey("code", email), key).Err(); err != nil {
			return fmt.Errorf("redis del otp: %w", err)
		}
	}
	return nil
}

func otpKey(kind, email string) string {
	return otpPrefix + ":" + kind + ":" + email
}
