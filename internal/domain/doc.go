// Package domain defines the core business entities of the class-booking
// marketplace (users, classes, cart items, payments) and the errors their
// validation produces. Entities map one-to-one onto MongoDB documents.
package domain
