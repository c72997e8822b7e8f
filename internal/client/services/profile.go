package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// ProfileService edits the logged-in account and its saved addresses.
type ProfileService struct {
	api client.ProfileAPI
	log logging.Logger
}

func NewProfileService(api client.ProfileAPI, log logging.Logger) *ProfileService {
	if log == nil {
		log = logging.Discard()
	}
	return &ProfileService{api: api, log: log.With("component", "profile")}
}

func (s *ProfileService) Get(ctx context.Context) (models.User, error) {
	u, err := s.api.GetProfile(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

func (s *ProfileService) Update(ctx context.Context, p models.Profile) (models.User, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.City = strings.TrimSpace(p.City)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.Name == "" {
		return models.User{}, common.NewValidationError("name", "is required")
	}
	u, err := s.api.UpdateProfile(ctx, p)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	s.log.Info(ctx, "profile updated", "user_id", u.ID)
	return u, nil
}

func (s *ProfileService) Addresses(ctx context.Context) ([]models.Address, error) {
	list, err := s.api.ListAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return list, nil
}

// DefaultAddress returns the address flagged as default, or the first one.
func (s *ProfileService) DefaultAddress(ctx context.Context) (models.Address, bool, error) {
	list, err := s.Addresses(ctx)
	if err != nil {
		return models.Address{}, false, err
	}
	for _, a := range list {
		if a.IsDefault {
			return a, true, nil
		}
	}
	if len(list) > 0 {
		return list[0], true, nil
	}
	return models.Address{}, false, nil
}

func (s *ProfileService) AddAddress(ctx context.Context, a models.Address) (models.Address, error) {
	a = trimAddress(a)
	a.ID = ""
	if err := validateAddress(a); err != nil {
		return models.Address{}, err
	}
	out, err := s.api.AddAddress(ctx, a)
	if err != nil {
		return models.Address{}, fmt.Errorf("add address: %w", err)
	}
	s.log.Info(ctx, "address added", "address_id", out.ID)
	return out, nil
}

func (s *ProfileService) UpdateAddress(ctx context.Context, a models.Address) (models.Address, error) {
	a = trimAddress(a)
	a.ID = strings.TrimSpace(a.ID)
	if a.ID == "" {
		return models.Address{}, common.NewValidationError("id", "is required")
	}
	if err := validateAddress(a); err != nil {
		return models.Address{}, err
	}
	out, err := s.api.UpdateAddress(ctx, a)
	if err != nil {
		return models.Address{}, fmt.Errorf("update address %s: %w", a.ID, err)
	}
	return out, nil
}

func (s *ProfileService) DeleteAddress(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return common.NewValidationError("id", "is required")
	}
	if err := s.api.DeleteAddress(ctx, id); err != nil {
		return fmt.Errorf("delete address %s: %w", id, err)
	}
	s.log.Info(ctx, "address deleted", "address_id", id)
	return nil
}
