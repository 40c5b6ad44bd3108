// Package margin implementa o validador de segurança de margem: função
// pura, determinística e sem efeitos colaterais, chamada tanto por callers
// interativos quanto pelo coordenador de automação antes de aprovar
// aumentos de lance/orçamento.
package margin

import (
	"fmt"
	"math"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/config"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/utils"
)

type Validator interface {
	Validate(input domain.MarginValidationInput) (*domain.MarginValidationResult, error)
}

type Service struct {
	defaultSafetyPct float64
}

func NewService(cfg *config.Config) Validator {
	return &Service{
		defaultSafetyPct: cfg.Margin.DefaultSafetyPct,
	}
}

// Validate calcula a margem de lucro, a margem restante depois do markup de
// anúncio atual e o markup máximo seguro. Safety margin zerada usa o
// default da configuração.
func (s *Service) Validate(input domain.MarginValidationInput) (*domain.MarginValidationResult, error) {
	if input.ProductPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.ProductCost < 0 {
		return nil, ErrInvalidCost
	}

	safetyMargin := input.SafetyMarginPct
	if safetyMargin == 0 {
		safetyMargin = s.defaultSafetyPct
	}

	profitMargin := (input.ProductPrice - input.ProductCost) / input.ProductPrice * 100
	remainingMargin := profitMargin - input.CurrentMarkupPct
	maxSafeMarkup := math.Max(0, profitMargin-safetyMargin)

	var status domain.MarginStatus
	var severity domain.Severity
	switch {
	case remainingMargin < safetyMargin:
		status = domain.MarginStatusDanger
		severity = domain.SeverityCritical
	case remainingMargin < safetyMargin*1.5:
		status = domain.MarginStatusWarning
		severity = domain.SeverityMedium
	default:
		status = domain.MarginStatusSafe
		severity = domain.SeverityLow
	}

	return &domain.MarginValidationResult{
		Status:          status,
		Severity:        severity,
		ProfitMargin:    utils.RoundWithTwoDecimalPlace(profitMargin),
		RemainingMargin: utils.RoundWithTwoDecimalPlace(remainingMargin),
		MaxSafeMarkup:   utils.RoundWithTwoDecimalPlace(maxSafeMarkup),
		Recommendations: buildRecommendations(status, remainingMargin, maxSafeMarkup),
	}, nil
}

func buildRecommendations(status domain.MarginStatus, remainingMargin, maxSafeMarkup float64) []string {
	switch status {
	case domain.MarginStatusDanger:
		return []string{
			"Reduza o investimento em anúncios: a margem restante está abaixo do limite de segurança",
			fmt.Sprintf("Mantenha o markup de anúncio em no máximo %.2f%%", maxSafeMarkup),
			"Considere pausar campanhas de baixa conversão até a margem se recuperar",
		}
	case domain.MarginStatusWarning:
		return []string{
			fmt.Sprintf("Margem restante de %.2f%% está próxima do limite de segurança", remainingMargin),
			"Acompanhe o ACOS diariamente antes de aumentar lances",
		}
	default:
		return []string{
			fmt.Sprintf("Há espaço para aumentar o markup de anúncio em até %.2f%%", maxSafeMarkup),
		}
	}
}
