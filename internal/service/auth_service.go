package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/entity"
	"ai-deckgen-be/internal/pkg/logger"
	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/pkg/invite"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.InviteLoginRequest, clientIP, userAgent string) (*dto.InviteLoginResponse, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	LoginRecords(ctx context.Context, limit int) (*dto.LoginRecordsResponse, error)
	LoginRecordsCSV(ctx context.Context) ([]byte, error)
}

type authService struct {
	invites           *invite.Store
	records           contract.LoginRecordRepository
	jwtSecret         string
	adminPasswordHash string
	logger            logger.ILogger
}

func NewAuthService(
	invites *invite.Store,
	records contract.LoginRecordRepository,
	jwtSecret string,
	adminPasswordHash string,
	log logger.ILogger,
) IAuthService {
	return &authService{
		invites:           invites,
		records:           records,
		jwtSecret:         jwtSecret,
		adminPasswordHash: adminPasswordHash,
		logger:            log,
	}
}

func (s *authService) issueToken(claims jwt.MapClaims) (string, error) {
	claims["exp"] = time.Now().Add(tokenTTL).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) Login(ctx context.Context, req *dto.InviteLoginRequest, clientIP, userAgent string) (*dto.InviteLoginResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))
	if !s.invites.Verify(code) {
		s.logger.Warn("AuthService", "Invalid invite code", map[string]interface{}{"client_ip": clientIP})
		return &dto.InviteLoginResponse{Success: false, Message: "Invalid invite code"}, nil
	}

	token, err := s.issueToken(jwt.MapClaims{"invite_code": code})
	if err != nil {
		return nil, err
	}

	if s.records != nil {
		record := &entity.LoginRecord{
			InviteCode: code,
			ClientIP:   clientIP,
			UserAgent:  userAgent,
			CreatedAt:  time.Now(),
		}
		if err := s.records.Create(ctx, record); err != nil {
			// Record keeping must never block a valid login.
			s.logger.Warn("AuthService", "Login record write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("AuthService", "Invite login", map[string]interface{}{"invite_code": code})
	return &dto.InviteLoginResponse{Success: true, InviteCode: code, Token: token}, nil
}

func (s *authService) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.adminPasswordHash == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Admin access is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		return &dto.AdminLoginResponse{Success: false, Message: "Wrong password"}, nil
	}

	token, err := s.issueToken(jwt.MapClaims{"role": "admin"})
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{Success: true, Token: token}, nil
}

func (s *authService) LoginRecords(ctx context.Context, limit int) (*dto.LoginRecordsResponse, error) {
	if s.records == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Login records are not persisted")
	}

	records, err := s.records.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.records.Count(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.LoginRecordView, 0, len(records))
	for _, r := range records {
		views = append(views, dto.LoginRecordView{
			InviteCode: r.InviteCode,
			ClientIP:   r.ClientIP,
			UserAgent:  r.UserAgent,
			LoggedInAt: r.CreatedAt,
		})
	}
	return &dto.LoginRecordsResponse{Success: true, Total: int(total), Records: views}, nil
}

func (s *authService) LoginRecordsCSV(ctx context.Context) ([]byte, error) {
	if s.records == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Login records are not persisted")
	}

	records, err := s.records.FindAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "invite_code", "client_ip", "date", "time", "timestamp"})
	for i, r := range records {
		w.Write([]string{
			strconv.Itoa(i + 1),
			r.InviteCode,
			r.ClientIP,
			r.CreatedAt.Format("2006-01-02"),
			r.CreatedAt.Format("15:04:05"),
			strconv.FormatInt(r.CreatedAt.Unix(), 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
