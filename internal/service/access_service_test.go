package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/safewords/safewords_backend/internal/config"
	"github.com/safewords/safewords_backend/internal/service"
	"github.com/safewords/safewords_backend/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAccessService — вспомогательная функция для создания сервиса с моками
func newTestAccessService(t *testing.T) (service.AccessService, *mocks.MockSettingsRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockSettingsRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DefaultAccessCode: "1234",
	}

	return service.NewAccessService(repoMock, logger, cfg), repoMock
}

func TestAccessCheck_MatchOpensPanel(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAccessService(t)
	ctx := context.Background()

	// Ожидания: код еще не сохранялся, действует код по умолчанию
	repoMock.EXPECT().GetAccessCode(ctx).Return("", nil).Times(1)

	// Действие
	authorized, result, err := svc.Check(ctx, "1234")

	// Проверки
	require.NoError(t, err)
	assert.True(t, authorized)
	assert.Empty(t, result)
}

func TestAccessCheck_MismatchEvaluatesExpression(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAccessService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetAccessCode(ctx).Return("", nil).Times(1)

	// Действие
	authorized, result, err := svc.Check(ctx, "12+3*4")

	// Проверки
	require.NoError(t, err)
	assert.False(t, authorized)
	assert.Equal(t, "24", result)
}

func TestAccessCheck_InvalidExpressionShowsError(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAccessService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetAccessCode(ctx).Return("", nil).Times(1)

	// Действие
	authorized, result, err := svc.Check(ctx, "12+")

	// Проверки: ошибка выражения не отличима от любого другого промаха
	require.NoError(t, err)
	assert.False(t, authorized)
	assert.Equal(t, "Error", result)
}

func TestAccessCheck_StoredCodeOverridesDefault(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAccessService(t)
	ctx := context.Background()

	// Ожидания: сохраненный код вытесняет код по умолчанию
	repoMock.EXPECT().GetAccessCode(ctx).Return("5678", nil).Times(2)

	// Действие и проверки
	authorized, _, err := svc.Check(ctx, "5678")
	require.NoError(t, err)
	assert.True(t, authorized)

	authorized, result, err := svc.Check(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, authorized)
	assert.Equal(t, "1234", result)
}

func TestChangeCode_Success(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestAccessService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetAccessCode(ctx).Return("", nil).Times(1)
	repoMock.EXPECT().SetAccessCode(ctx, "5678").Return(nil).Times(1)

	// Действие
	err := svc.ChangeCode(ctx, "1234", "5678", "5678")

	// Проверки
	require.NoError(t, err)
}

func TestChangeCode_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		current string
		next    string
		confirm string
		stored  string
		lookup  bool
	}{
		{"пустое поле", "", "5678", "5678", "", false},
		{"коды не совпадают", "1234", "5678", "8765", "", false},
		{"короткий код", "1234", "123", "123", "", false},
		{"длинный код", "1234", "56789", "56789", "", false},
		{"нецифровой код", "1234", "12ab", "12ab", "", false},
		{"неверный текущий код", "0000", "5678", "5678", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Подготовка
			svc, repoMock := newTestAccessService(t)
			ctx := context.Background()

			// Ожидания: до проверки текущего кода хранилище не трогается,
			// запись не происходит ни в одном случае
			if tc.lookup {
				repoMock.EXPECT().GetAccessCode(ctx).Return(tc.stored, nil).Times(1)
			}
			repoMock.EXPECT().SetAccessCode(gomock.Any(), gomock.Any()).Times(0)

			// Действие
			err := svc.ChangeCode(ctx, tc.current, tc.next, tc.confirm)

			// Проверки
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrInvalidAccessCodeChange)
		})
	}
}
