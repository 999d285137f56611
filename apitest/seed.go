package apitest

import "golang.org/x/crypto/bcrypt"

func (s *Server) seed() {
	// MinCost keeps test start-up fast; the hash is still a real bcrypt hash.
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.users = []*user{
		{ID: 1, Name: "Nick Fury", Username: "fury", Role: "ADMIN", Country: countryAll},
		{ID: 2, Name: "Captain Marvel", Username: "marvel", Role: "MANAGER", Country: "INDIA"},
		{ID: 3, Name: "Captain America", Username: "america", Role: "MANAGER", Country: "AMERICA"},
		{ID: 4, Name: "Thanos", Username: "thanos", Role: "MEMBER", Country: "INDIA"},
		{ID: 5, Name: "Thor", Username: "thor", Role: "MEMBER", Country: "INDIA"},
		{ID: 6, Name: "Travis", Username: "travis", Role: "MEMBER", Country: "AMERICA"},
	}
	for _, u := range s.users {
		u.hashedPassword = hashed
	}

	s.restaurants = []*restaurant{
		{ID: 1, Name: "Taj Mahal Delights", Country: "INDIA", MenuItems: []menuItem{
			{ID: 1, RestaurantID: 1, Name: "Butter Chicken", Price: 450.0},
			{ID: 2, RestaurantID: 1, Name: "Naan", Price: 50.0},
		}},
		{ID: 2, Name: "Spice Route", Country: "INDIA", MenuItems: []menuItem{
			{ID: 3, RestaurantID: 2, Name: "Biryani", Price: 350.0},
		}},
		{ID: 3, Name: "Liberty Burger", Country: "AMERICA", MenuItems: []menuItem{
			{ID: 4, RestaurantID: 3, Name: "Cheeseburger", Price: 12.0},
			{ID: 5, RestaurantID: 3, Name: "Fries", Price: 4.0},
		}},
		{ID: 4, Name: "Empire Steakhouse", Country: "AMERICA", MenuItems: []menuItem{
			{ID: 6, RestaurantID: 4, Name: "T-Bone Steak", Price: 45.0},
		}},
	}

	s.paymentMethods = []*paymentMethod{
		{ID: 1, UserID: 1, Type: "CREDIT_CARD"},
		{ID: 2, UserID: 2, Type: "UPI"},
		{ID: 3, UserID: 3, Type: "DEBIT_CARD"},
		{ID: 4, UserID: 4, Type: "UPI"},
		{ID: 5, UserID: 5, Type: "CASH"},
		{ID: 6, UserID: 6, Type: "CREDIT_CARD"},
	}

	s.nextOrderID = 1
	s.nextItemID = 1
}
