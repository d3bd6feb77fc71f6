package repository

import "fmt"

// Key layout of the backing store. One snapshot per cart and order history,
// one shared users table, one pending challenge per phone number.
const (
	usersTableKey     = "users"
	currentSessionKey = "session:current_user_id"
)

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func ordersKey(userID string) string {
	return fmt.Sprintf("orders:%s", userID)
}

func challengeKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}
