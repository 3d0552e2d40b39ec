package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/removals-office/internal/config"
	"github.com/nurpe/removals-office/internal/model"
)

func companyFromConfig(cfg *config.Config) model.Company {
	return model.Company{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		Website: cfg.Company.Website,
	}
}

// documentFileName builds names such as Quote_QT-25-00001.pdf.
func documentFileName(kind, number string) string {
	return kind + "_" + sanitizeFileName(number) + ".pdf"
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

func clientIndex(ctx context.Context, clients ClientStore, ids []uuid.UUID) (map[uuid.UUID]model.Client, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := clients.GetMany(ctx, unique)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]model.Client, len(found))
	for _, client := range found {
		index[client.ID] = client
	}
	return index, nil
}

func cloneCharges(charges []model.Charge) []model.Charge {
	if charges == nil {
		return []model.Charge{}
	}
	out := make([]model.Charge, len(charges))
	copy(out, charges)
	return out
}

func cloneDiscounts(discounts []model.Discount) []model.Discount {
	if discounts == nil {
		return []model.Discount{}
	}
	out := make([]model.Discount, len(discounts))
	copy(out, discounts)
	return out
}
