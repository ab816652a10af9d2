// Package models defines the data shapes exchanged between the giftshop CLI
// and the gift API: the user session record, catalog products, themes and
// order payloads. JSON tags follow the API's camelCase field names.
package models
