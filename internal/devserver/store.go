package devserver

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

type account struct {
	user models.User
	hash []byte
}

type placedOrder struct {
	userID string
	order  models.Order
}

// Store holds every marketplace entity behind one mutex. Lists keep
// insertion order so responses are stable.
type Store struct {
	mu       sync.Mutex
	hashCost int
	now      func() time.Time

	users   map[string]*account
	byEmail map[string]string

	shops   []*models.Shop
	fabrics []*models.Fabric
	tailors []*models.Tailor

	carts     map[string][]models.CartItem
	orders    []placedOrder
	inquiries []*models.Inquiry
	addresses map[string][]models.Address
}

// NewStore returns an empty store. hashCost is the bcrypt cost used for
// passwords; zero selects bcrypt.DefaultCost.
func NewStore(hashCost int) *Store {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Store{
		hashCost:  hashCost,
		now:       time.Now,
		users:     make(map[string]*account),
		byEmail:   make(map[string]string),
		carts:     make(map[string][]models.CartItem),
		addresses: make(map[string][]models.Address),
	}
}

func newID() string { return uuid.NewString() }

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates an account. Tailor and shop accounts also get an empty
// tailor profile or shop named after the user.
func (s *Store) Register(req models.RegisterRequest) (models.User, error) {
	email := normEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return models.User{}, newError(errInvalid, "Name is required")
	case email == "":
		return models.User{}, newError(errInvalid, "Email is required")
	case len(req.Password) < 6:
		return models.User{}, newError(errInvalid, "Password must be at least 6 characters")
	case !req.Role.Valid():
		return models.User{}, newError(errInvalid, "Role is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return models.User{}, newError(errConflict, "User already exists")
	}

	u := models.User{ID: newID(), Name: name, Email: email, Role: req.Role,
		City: strings.TrimSpace(req.City), Phone: strings.TrimSpace(req.Phone)}
	s.users[u.ID] = &account{user: u, hash: hash}
	s.byEmail[email] = u.ID

	switch u.Role {
	case models.RoleTailor:
		s.tailors = append(s.tailors, &models.Tailor{ID: newID(), UserID: u.ID, Name: u.Name, City: u.City})
	case models.RoleShop:
		s.shops = append(s.shops, &models.Shop{ID: newID(), OwnerID: u.ID, Name: u.Name, City: u.City})
	case models.RoleCustomer:
	}
	return u, nil
}

// Authenticate checks the password and that the account has the requested
// role. Unknown emails and wrong passwords look the same to the caller.
func (s *Store) Authenticate(email, password string, role models.Role) (models.User, error) {
	s.mu.Lock()
	id, ok := s.byEmail[normEmail(email)]
	var acc account
	if ok {
		acc = *s.users[id]
	}
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return models.User{}, newError(errUnauthorized, "Invalid credentials")
	}
	if role.Valid() && role != acc.user.Role {
		return models.User{}, newError(errForbidden, "This account is registered as a %s", acc.user.Role)
	}
	return acc.user, nil
}

func (s *Store) User(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[id]
	if !ok {
		return models.User{}, newError(errUnauthorized, "User not found")
	}
	return acc.user, nil
}

func (s *Store) UpdateProfile(userID string, p models.Profile) (models.User, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.User{}, newError(errInvalid, "Name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[userID]
	if !ok {
		return models.User{}, newError(errNotFound, "User not found")
	}
	acc.user.Name = strings.TrimSpace(p.Name)
	acc.user.City = strings.TrimSpace(p.City)
	acc.user.Phone = strings.TrimSpace(p.Phone)
	return acc.user, nil
}

// Catalog

func (s *Store) Fabrics() []models.Fabric {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Fabric, 0, len(s.fabrics))
	for _, f := range s.fabrics {
		c := *f
		c.Reviews = nil
		out = append(out, c)
	}
	return out
}

func (s *Store) fabric(id string) (*models.Fabric, error) {
	for _, f := range s.fabrics {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, newError(errNotFound, "Fabric not found")
}

func (s *Store) Fabric(id string) (models.Fabric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.fabric(id)
	if err != nil {
		return models.Fabric{}, err
	}
	out := *f
	out.Reviews = append([]models.Review(nil), f.Reviews...)
	return out, nil
}

// AddReview appends a review and recomputes the fabric's average rating.
func (s *Store) AddReview(userID, fabricID string, r models.Review) (models.Review, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return models.Review{}, newError(errInvalid, "Rating must be between 1 and 5")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.fabric(fabricID)
	if err != nil {
		return models.Review{}, err
	}
	r.ID = newID()
	r.UserName = s.users[userID].user.Name
	r.CreatedAt = s.now().UTC()
	f.Reviews = append(f.Reviews, r)

	var sum int
	for _, x := range f.Reviews {
		sum += x.Rating
	}
	f.NumReviews = len(f.Reviews)
	f.Rating = math.Round(float64(sum)/float64(f.NumReviews)*10) / 10
	return r, nil
}

func (s *Store) Shops() []models.Shop {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Shop, 0, len(s.shops))
	for _, sh := range s.shops {
		out = append(out, *sh)
	}
	return out
}

func (s *Store) Shop(id string) (models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shops {
		if sh.ID == id {
			return *sh, nil
		}
	}
	return models.Shop{}, newError(errNotFound, "Shop not found")
}

func (s *Store) ShopOf(ownerID string) (models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shops {
		if sh.OwnerID == ownerID {
			return *sh, nil
		}
	}
	return models.Shop{}, newError(errNotFound, "Shop not found")
}

func (s *Store) ShopFabrics(shopID string) ([]models.Fabric, error) {
	if _, err := s.Shop(shopID); err != nil {
		return nil, err
	}
	all := s.Fabrics()
	out := make([]models.Fabric, 0)
	for _, f := range all {
		if f.Shop.ID == shopID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Store) Tailors() []models.Tailor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Tailor, 0, len(s.tailors))
	for _, t := range s.tailors {
		out = append(out, *t)
	}
	return out
}

func (s *Store) Tailor(id string) (models.Tailor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tailors {
		if t.ID == id {
			return *t, nil
		}
	}
	return models.Tailor{}, newError(errNotFound, "Tailor not found")
}

// Cart

func cartOf(items []models.CartItem) models.Cart {
	c := models.Cart{Items: make([]models.CartItem, len(items))}
	copy(c.Items, items)
	for _, it := range items {
		c.TotalItems += it.Quantity
		c.TotalAmount += it.Subtotal
	}
	c.TotalAmount = math.Round(c.TotalAmount*100) / 100
	return c
}

func (s *Store) Cart(userID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartOf(s.carts[userID])
}

// AddToCart adds quantity of a fabric, merging with an existing line. The
// line keeps the price it was first added at.
func (s *Store) AddToCart(userID, fabricID string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, newError(errInvalid, "Quantity must be at least 1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.fabric(fabricID)
	if err != nil {
		return models.Cart{}, err
	}

	items := s.carts[userID]
	for i := range items {
		if items[i].FabricID != fabricID {
			continue
		}
		if items[i].Quantity+quantity > f.Stock {
			return models.Cart{}, newError(errInvalid, "Only %d in stock", f.Stock)
		}
		items[i].Quantity += quantity
		items[i].Subtotal = items[i].PriceAtAdd * float64(items[i].Quantity)
		return cartOf(items), nil
	}

	if quantity > f.Stock {
		return models.Cart{}, newError(errInvalid, "Only %d in stock", f.Stock)
	}
	var image []string
	if len(f.Images) > 0 {
		image = f.Images[:1]
	}
	items = append(items, models.CartItem{
		FabricID: f.ID,
		Fabric: models.FabricRef{ID: f.ID, Name: f.Name, Price: f.Price, Images: image,
			ShopID: f.Shop.ID, ShopName: f.Shop.Name},
		Quantity:   quantity,
		PriceAtAdd: f.Price,
		Subtotal:   f.Price * float64(quantity),
	})
	s.carts[userID] = items
	return cartOf(items), nil
}

// SetCartQuantity replaces a line's quantity; zero removes the line.
func (s *Store) SetCartQuantity(userID, fabricID string, quantity int) (models.Cart, error) {
	if quantity < 0 {
		return models.Cart{}, newError(errInvalid, "Quantity cannot be negative")
	}
	if quantity == 0 {
		return s.RemoveFromCart(userID, fabricID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].FabricID != fabricID {
			continue
		}
		if f, err := s.fabric(fabricID); err == nil && quantity > f.Stock {
			return models.Cart{}, newError(errInvalid, "Only %d in stock", f.Stock)
		}
		items[i].Quantity = quantity
		items[i].Subtotal = items[i].PriceAtAdd * float64(quantity)
		return cartOf(items), nil
	}
	return models.Cart{}, newError(errNotFound, "Item not in cart")
}

func (s *Store) RemoveFromCart(userID, fabricID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].FabricID == fabricID {
			items = append(items[:i], items[i+1:]...)
			s.carts[userID] = items
			return cartOf(items), nil
		}
	}
	return models.Cart{}, newError(errNotFound, "Item not in cart")
}

func (s *Store) ClearCart(userID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return cartOf(nil)
}

// Orders

// PlaceOrder turns the user's cart into an order, decrements stock and
// empties the cart.
func (s *Store) PlaceOrder(userID string, req models.CheckoutRequest) (models.Order, error) {
	a := req.ShippingAddress
	switch {
	case a.Name == "" || a.Address == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Phone == "":
		return models.Order{}, newError(errInvalid, "Shipping address is incomplete")
	case !req.PaymentMethod.Valid():
		return models.Order{}, newError(errInvalid, "Unsupported payment method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	if len(items) == 0 {
		return models.Order{}, newError(errInvalid, "Cart is empty")
	}
	for _, it := range items {
		f, err := s.fabric(it.FabricID)
		if err != nil {
			return models.Order{}, err
		}
		if it.Quantity > f.Stock {
			return models.Order{}, newError(errInvalid, "Only %d of %s in stock", f.Stock, f.Name)
		}
	}

	cart := cartOf(items)
	o := models.Order{
		ID:              newID(),
		ShippingAddress: a,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     cart.TotalAmount,
		Status:          "pending",
		CreatedAt:       s.now().UTC(),
	}
	for _, it := range items {
		f, _ := s.fabric(it.FabricID)
		f.Stock -= it.Quantity
		o.Items = append(o.Items, models.OrderItem{FabricID: it.FabricID, Name: it.Fabric.Name,
			Quantity: it.Quantity, Price: it.PriceAtAdd})
	}
	s.orders = append(s.orders, placedOrder{userID: userID, order: o})
	delete(s.carts, userID)
	return o, nil
}
