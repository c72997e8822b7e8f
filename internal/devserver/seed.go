package devserver

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

// Seeded accounts.
const (
	DemoCustomerEmail = "asha@example.com"
	DemoTailorEmail   = "ravi@example.com"
	DemoShopEmail     = "meera@example.com"
)

// Seed fills an empty store with a small catalog and one account per role.
func (s *Store) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.hashCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	add := func(id, name, email string, role models.Role, city string) {
		s.users[id] = &account{user: models.User{ID: id, Name: name, Email: email, Role: role, City: city}, hash: hash}
		s.byEmail[email] = id
	}
	add("user-asha", "Asha Rao", DemoCustomerEmail, models.RoleCustomer, "Bengaluru")
	add("user-ravi", "Ravi Kumar", DemoTailorEmail, models.RoleTailor, "Jaipur")
	add("user-meera", "Meera Textiles", DemoShopEmail, models.RoleShop, "Surat")

	s.shops = append(s.shops,
		&models.Shop{ID: "shop-1", OwnerID: "user-meera", Name: "Meera Textiles", City: "Surat",
			Address: "Ring Road 12", Description: "Silks and georgettes since 1982", Rating: 4.6},
		&models.Shop{ID: "shop-2", Name: "Chennai Weaves", City: "Chennai",
			Address: "T. Nagar 4", Description: "Handloom cottons", Rating: 4.2},
		&models.Shop{ID: "shop-3", Name: "Threadline", City: "Delhi", Rating: 3.9},
	)

	ref := func(i int) models.ShopRef {
		sh := s.shops[i]
		return models.ShopRef{ID: sh.ID, Name: sh.Name, City: sh.City}
	}
	s.fabrics = append(s.fabrics,
		&models.Fabric{ID: "fab-1", Name: "Banarasi Silk", Description: "Zari woven silk", Category: "silk",
			Color: "red", Material: "silk", Price: 1500, Stock: 20, Rating: 4.8, Shop: ref(0)},
		&models.Fabric{ID: "fab-2", Name: "Chanderi Cotton", Description: "Light sheer cotton", Category: "cotton",
			Color: "ivory", Material: "cotton silk", Price: 500, Stock: 50, Rating: 4.1, Shop: ref(1)},
		&models.Fabric{ID: "fab-3", Name: "Georgette Print", Category: "georgette",
			Color: "navy blue", Material: "polyester", Price: 3000, Stock: 3, Rating: 3.7, Shop: ref(0)},
		&models.Fabric{ID: "fab-4", Name: "Khadi Plain", Description: "Hand spun", Category: "cotton",
			Color: "white", Material: "cotton", Price: 350, Stock: 120, Rating: 4.4, Shop: ref(1)},
		&models.Fabric{ID: "fab-5", Name: "Linen Blend", Category: "linen",
			Color: "beige", Material: "linen", Price: 900, Stock: 4, Rating: 4.0, Shop: ref(2)},
	)

	s.tailors = append(s.tailors,
		&models.Tailor{ID: "tailor-1", UserID: "user-ravi", Name: "Ravi Kumar", City: "Jaipur",
			Specialization: "sherwani", Experience: 12, Rating: 4.7, StartingPrice: 2500,
			Bio: "Wedding wear and bandhgalas"},
		&models.Tailor{ID: "tailor-2", Name: "Lakshmi Iyer", City: "Chennai",
			Specialization: "blouse", Experience: 6, Rating: 4.5, StartingPrice: 800},
		&models.Tailor{ID: "tailor-3", Name: "Imran Sheikh", City: "Delhi",
			Specialization: "suits and blazers", Experience: 20, Rating: 4.9, StartingPrice: 4000},
	)
	return nil
}
