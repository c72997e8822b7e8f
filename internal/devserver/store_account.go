package devserver

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

// Orders returns the user's orders, newest first.
func (s *Store) Orders(userID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0)
	for _, po := range s.orders {
		if po.userID == userID {
			out = append(out, po.order)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) Order(userID, id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, po := range s.orders {
		if po.order.ID == id && po.userID == userID {
			return po.order, nil
		}
	}
	return models.Order{}, newError(errNotFound, "Order not found")
}

// Inquiries

func (s *Store) SendInquiry(customerID, tailorID string, req models.InquiryRequest) (models.Inquiry, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return models.Inquiry{}, newError(errInvalid, "Subject and message are required")
	}
	if _, err := s.Tailor(tailorID); err != nil {
		return models.Inquiry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q := &models.Inquiry{
		ID:         newID(),
		TailorID:   tailorID,
		CustomerID: customerID,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     models.InquiryOpen,
		CreatedAt:  s.now().UTC(),
	}
	s.inquiries = append(s.inquiries, q)
	return *q, nil
}

// tailorIDOf returns the tailor profile owned by userID, or "".
func (s *Store) tailorIDOf(userID string) string {
	for _, t := range s.tailors {
		if t.UserID == userID {
			return t.ID
		}
	}
	return ""
}

// Inquiries lists what u can see: tailors get inquiries addressed to their
// profile, customers the ones they sent. Shops see none.
func (s *Store) Inquiries(u models.User) []models.Inquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	tailorID := s.tailorIDOf(u.ID)
	out := make([]models.Inquiry, 0)
	for _, q := range s.inquiries {
		switch u.Role {
		case models.RoleTailor:
			if q.TailorID == tailorID {
				out = append(out, *q)
			}
		case models.RoleCustomer:
			if q.CustomerID == u.ID {
				out = append(out, *q)
			}
		case models.RoleShop:
		}
	}
	return out
}

// SetInquiryStatus is only allowed for the tailor the inquiry is addressed
// to. A closed inquiry stays closed.
func (s *Store) SetInquiryStatus(u models.User, id string, status models.InquiryStatus) (models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tailorID := s.tailorIDOf(u.ID)
	for _, q := range s.inquiries {
		if q.ID != id {
			continue
		}
		if u.Role != models.RoleTailor || q.TailorID != tailorID {
			return models.Inquiry{}, newError(errForbidden, "Not your inquiry")
		}
		if q.Status != models.InquiryClosed {
			q.Status = status
		}
		return *q, nil
	}
	return models.Inquiry{}, newError(errNotFound, "Inquiry not found")
}

// Addresses

func (s *Store) Addresses(userID string) []models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]models.Address, 0), s.addresses[userID]...)
}

func validAddress(a models.Address) error {
	if a.Name == "" || a.Address == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Phone == "" {
		return newError(errInvalid, "All address fields are required")
	}
	return nil
}

// setDefault keeps at most one default address, and makes the first saved
// address the default.
func setDefault(list []models.Address, idx int) {
	if !list[idx].IsDefault && len(list) > 1 {
		return
	}
	for i := range list {
		list[i].IsDefault = i == idx
	}
}

func (s *Store) AddAddress(userID string, a models.Address) (models.Address, error) {
	if err := validAddress(a); err != nil {
		return models.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = newID()
	list := append(s.addresses[userID], a)
	setDefault(list, len(list)-1)
	s.addresses[userID] = list
	return list[len(list)-1], nil
}

func (s *Store) UpdateAddress(userID string, a models.Address) (models.Address, error) {
	if err := validAddress(a); err != nil {
		return models.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.addresses[userID]
	for i := range list {
		if list[i].ID == a.ID {
			wasDefault := list[i].IsDefault
			list[i] = a
			if wasDefault {
				list[i].IsDefault = true
			}
			setDefault(list, i)
			return list[i], nil
		}
	}
	return models.Address{}, newError(errNotFound, "Address not found")
}

func (s *Store) DeleteAddress(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.addresses[userID]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		wasDefault := list[i].IsDefault
		list = append(list[:i], list[i+1:]...)
		if wasDefault && len(list) > 0 {
			list[0].IsDefault = true
		}
		s.addresses[userID] = list
		return nil
	}
	return newError(errNotFound, "Address not found")
}
