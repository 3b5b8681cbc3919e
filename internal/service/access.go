package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/safewords/safewords_backend/internal/config"
	"github.com/sirupsen/logrus"
)

// SettingsRepository определяет контракт для персистентных настроек
type SettingsRepository interface {
	// GetAccessCode возвращает "" если код еще не сохранялся
	GetAccessCode(ctx context.Context) (string, error)
	SetAccessCode(ctx context.Context, code string) error
}

// AccessService определяет контракт калькуляторного шлюза: совпадение
// введенных цифр с кодом доступа открывает экстренную панель, несовпадение
// вычисляется как арифметическое выражение, сохраняя маскировку
type AccessService interface {
	Check(ctx context.Context, digits string) (bool, string, error)
	ChangeCode(ctx context.Context, current, next, confirm string) error
}

type accessService struct {
	repo   SettingsRepository
	logger *logrus.Logger
	cfg    *config.Config
}

func NewAccessService(repo SettingsRepository, logger *logrus.Logger, cfg *config.Config) AccessService {
	return &accessService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// storedCode читает сохраненный код доступа с откатом на документированный
// код по умолчанию
func (s *accessService) storedCode(ctx context.Context) (string, error) {
	code, err := s.repo.GetAccessCode(ctx)
	if err != nil {
		return "", fmt.Errorf("service: could not read access code: %w", err)
	}
	if code == "" {
		code = s.cfg.DefaultAccessCode
	}
	return code, nil
}

// Check сравнивает ввод с кодом доступа. При совпадении вызывающий
// авторизован открыть экстренную панель; при несовпадении ввод вычисляется
// как выражение и возвращается результат для дисплея калькулятора.
func (s *accessService) Check(ctx context.Context, digits string) (bool, string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "access",
		"method":  "Check",
	})

	code, err := s.storedCode(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read access code")
		return false, "", err
	}
	if digits == code {
		log.Info("Access code accepted")
		return true, "", nil
	}

	result, evalErr := evalExpression(digits)
	if evalErr != nil {
		// Недопустимое выражение показывается как ошибка калькулятора,
		// а не как отказ в доступе
		return false, "Error", nil
	}
	return false, result, nil
}

// ChangeCode меняет код доступа. Требует знания текущего кода, совпадения
// нового кода с подтверждением и ровно 4 цифр; любое нарушение отклоняется
// до каких-либо изменений в хранилище.
func (s *accessService) ChangeCode(ctx context.Context, current, next, confirm string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "access",
		"method":  "ChangeCode",
	})

	if current == "" || next == "" || confirm == "" {
		return fmt.Errorf("service: all fields are required: %w", ErrInvalidAccessCodeChange)
	}
	if next != confirm {
		return fmt.Errorf("service: new codes do not match: %w", ErrInvalidAccessCodeChange)
	}
	if len(next) != 4 || strings.Trim(next, "0123456789") != "" {
		return fmt.Errorf("service: access code must be 4 digits: %w", ErrInvalidAccessCodeChange)
	}

	code, err := s.storedCode(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read access code")
		return err
	}
	if current != code {
		log.Warn("Access code change rejected: current code is incorrect")
		return fmt.Errorf("service: current access code is incorrect: %w", ErrInvalidAccessCodeChange)
	}

	if err := s.repo.SetAccessCode(ctx, next); err != nil {
		log.WithError(err).Error("Failed to persist new access code")
		return fmt.Errorf("service: could not change access code: %w", err)
	}
	log.Info("Access code changed successfully")
	return nil
}

// evalExpression вычисляет выражение калькулятора: + - * /, десятичные
// дроби, обычный приоритет операций. Ничего больше дисплей ввести не дает.
func evalExpression(input string) (string, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return "", err
	}

	value, rest, err := evalTerms(tokens)
	if err != nil {
		return "", err
	}
	if len(rest) != 0 {
		return "", fmt.Errorf("unexpected token %q", rest[0])
	}
	return strconv.FormatFloat(value, 'f', -1, 64), nil
}

func tokenize(input string) ([]string, error) {
	var tokens []string
	var number strings.Builder
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9' || r == '.':
			number.WriteRune(r)
		case r == '+' || r == '-' || r == '*' || r == '/':
			if number.Len() == 0 {
				return nil, fmt.Errorf("operator %q without operand", r)
			}
			tokens = append(tokens, number.String(), string(r))
			number.Reset()
		default:
			return nil, fmt.Errorf("invalid character %q", r)
		}
	}
	if number.Len() == 0 {
		return nil, fmt.Errorf("expression is empty or ends with an operator")
	}
	tokens = append(tokens, number.String())
	return tokens, nil
}

// evalTerms обрабатывает + и -, evalFactors - * и /
func evalTerms(tokens []string) (float64, []string, error) {
	value, rest, err := evalFactors(tokens)
	if err != nil {
		return 0, nil, err
	}
	for len(rest) > 0 && (rest[0] == "+" || rest[0] == "-") {
		op := rest[0]
		var right float64
		right, rest, err = evalFactors(rest[1:])
		if err != nil {
			return 0, nil, err
		}
		if op == "+" {
			value += right
		} else {
			value -= right
		}
	}
	return value, rest, nil
}

func evalFactors(tokens []string) (float64, []string, error) {
	if len(tokens) == 0 {
		return 0, nil, fmt.Errorf("expression is incomplete")
	}
	value, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid number %q", tokens[0])
	}
	rest := tokens[1:]
	for len(rest) > 0 && (rest[0] == "*" || rest[0] == "/") {
		op := rest[0]
		if len(rest) < 2 {
			return 0, nil, fmt.Errorf("expression is incomplete")
		}
		right, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid number %q", rest[1])
		}
		if op == "*" {
			value *= right
		} else {
			if right == 0 {
				return 0, nil, fmt.Errorf("division by zero")
			}
			value /= right
		}
		rest = rest[2:]
	}
	return value, rest, nil
}
