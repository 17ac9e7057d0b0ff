package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
)

const (
	// OTPTTL vigencia del código enviado.
	OTPTTL = 5 * time.Minute
	// OTPCooldown espera mínima entre dos envíos al mismo email.
	OTPCooldown = time.Minute
	// ResetTokenTTL vigencia del token emitido al verificar el OTP.
	ResetTokenTTL = 5 * time.Minute

	otpDigits = 6
	// Mismo texto exista o no la cuenta, y también en enfriamiento.
	otpSentMessage = "Si existe una cuenta con ese email, se envió un OTP."
)

// OTPStore guarda el hash del OTP vigente por email.
type OTPStore interface {
	// Save guarda el hash si no hubo otro envío dentro del enfriamiento; false si lo hubo.
	Save(ctx context.Context, email, hash string) (bool, error)
	// Get devuelve el hash vigente; false si expiró o no existe.
	Get(ctx context.Context, email string) (string, bool, error)
	// Consume borra el OTP; false si otra verificación ya lo consumió.
	Consume(ctx context.Context, email string) (bool, error)
	// RegisterFailure cuenta un intento fallido y descarta el OTP al llegar al máximo.
	RegisterFailure(ctx context.Context, email string) error
}

// OTPSender entrega el código al usuario.
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// PasswordResetUseCase restablecimiento de contraseña por OTP:
// request-reset-otp → verify-reset-otp (token password_reset) → reset-password.
type PasswordResetUseCase struct {
	userRepo repository.UserRepository
	otps     OTPStore
	sender   OTPSender
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewPasswordResetUseCase construye el caso de uso.
func NewPasswordResetUseCase(userRepo repository.UserRepository, otps OTPStore, sender OTPSender, jwtCfg JWTConfig, log zerolog.Logger) *PasswordResetUseCase {
	return &PasswordResetUseCase{
		userRepo: userRepo,
		otps:     otps,
		sender:   sender,
		jwtCfg:   jwtCfg,
		log:      log.With().Str("component", "password_reset").Logger(),
	}
}

// RequestOTP genera y envía un OTP. La respuesta no revela si la cuenta existe.
func (uc *PasswordResetUseCase) RequestOTP(ctx context.Context, in dto.RequestOTPRequest) (*dto.MessageResponse, error) {
	generic := &dto.MessageResponse{Message: otpSentMessage, Status: "success"}
	email := normalizeEmail(in.Email)
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "formato inválido")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return generic, nil
	}

	code, err := randomCode()
	if err != nil {
		return nil, fmt.Errorf("generar otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	saved, err := uc.otps.Save(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}
	if !saved {
		uc.log.Debug().Str("user_id", user.ID).Msg("otp en enfriamiento, no se reenvía")
		return generic, nil
	}
	if err := uc.sender.SendOTP(ctx, email, code); err != nil {
		return nil, fmt.Errorf("enviar otp: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("otp de restablecimiento emitido")
	return generic, nil
}

// VerifyOTP valida el código (un solo uso) y emite un token password_reset.
func (uc *PasswordResetUseCase) VerifyOTP(ctx context.Context, in dto.VerifyOTPRequest) (*dto.ResetTokenResponse, error) {
	invalid := domain.NewValidationError("otp_code", "OTP o email inválido")
	email := normalizeEmail(in.Email)
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid
	}
	hash, ok, err := uc.otps.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewValidationError("otp_code", "OTP expirado o inexistente")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(in.OTPCode))); err != nil {
		if ferr := uc.otps.RegisterFailure(ctx, email); ferr != nil {
			uc.log.Warn().Err(ferr).Msg("no se pudo registrar el intento fallido")
		}
		return nil, invalid
	}
	consumed, err := uc.otps.Consume(ctx, email)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, invalid
	}

	token, err := jwt.GeneratePasswordReset(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, ResetTokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.ResetTokenResponse{Message: "OTP verificado", ResetToken: token, Status: "success"}, nil
}

// ResetPassword fija la nueva contraseña. ErrUnauthorized si el token no es de restablecimiento o expiró.
func (uc *PasswordResetUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	userID, err := jwt.ParsePasswordReset(uc.jwtCfg.Secret, in.ResetToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if len(in.NewPassword) < minPasswordLen {
		return nil, domain.NewValidationError("new_password", "mínimo 6 caracteres")
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash), time.Now()); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return &dto.MessageResponse{Message: "Contraseña restablecida", Status: "success"}, nil
}

// LogOTPSender escribe el aviso en el log; el código solo si revealCode (desarrollo).
type LogOTPSender struct {
	log        zerolog.Logger
	revealCode bool
}

// NewLogOTPSender construye el sender.
func NewLogOTPSender(log zerolog.Logger, revealCode bool) *LogOTPSender {
	return &LogOTPSender{log: log, revealCode: revealCode}
}

// SendOTP implementa OTPSender.
func (s *LogOTPSender) SendOTP(_ context.Context, email, code string) error {
	ev := s.log.Info().Str("email", email)
	if s.revealCode {
		ev = ev.Str("otp", code)
	}
	ev.Msg("otp de restablecimiento")
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
