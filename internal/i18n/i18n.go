// Package i18n resolves the bilingual static strings of the storefront.
package i18n

import (
	"fmt"
	"strconv"

	"sams-storefront/internal/domain"
)

// Message keys.
const (
	KeyItemAdded           = "cart.notify.item_added"
	KeyItemRemoved         = "cart.notify.item_removed"
	KeyPromoEmpty          = "cart.notify.promo_empty"
	KeyPromoInvalid        = "cart.notify.promo_invalid"
	KeyPromoIneligible     = "cart.notify.promo_ineligible"
	KeyPromoApplied        = "cart.notify.promo_applied"
	KeyPromoAlreadyApplied = "cart.notify.promo_already_applied"
	KeyLanguageChanged     = "site.notify.language_changed"

	KeyReservationSubmitted = "reservation.notify.submitted"
	KeyReservationName      = "reservation.notify.invalid_name"
	KeyReservationEmail     = "reservation.notify.invalid_email"
	KeyReservationPhone     = "reservation.notify.invalid_phone"
	KeyReservationDate      = "reservation.notify.invalid_date"

	KeyEmptyTitle  = "cart.empty.title"
	KeyEmptyBody   = "cart.empty.body"
	KeyBrowseMenu  = "cart.empty.browse_menu"
	KeyPerUnit     = "cart.line.per_unit"
	KeyLineTotal   = "cart.line.total"
	KeySubtotal    = "cart.summary.subtotal"
	KeyDelivery    = "cart.summary.delivery"
	KeyDiscount    = "cart.summary.discount"
	KeyGrandTotal  = "cart.summary.total"
	KeyViewCart    = "cart.dropdown.view_cart"
	KeyCheckout    = "cart.page.checkout"
	KeyItemOne     = "cart.count.one"
	KeyItemOther   = "cart.count.other"
	KeyPromoPrompt = "cart.promo.placeholder"
)

// Localizer resolves a message key in a language.
type Localizer interface {
	Resolve(key string, lang domain.Lang) string
}

// Bundle is an in-memory Localizer.
type Bundle struct {
	messages map[string]domain.LocalizedText
}

// NewBundle returns the storefront's built-in strings.
func NewBundle() *Bundle {
	return &Bundle{messages: map[string]domain.LocalizedText{
		KeyItemAdded:           {domain.LangEN: "Item added to cart!", domain.LangFR: "Article ajouté au panier !"},
		KeyItemRemoved:         {domain.LangEN: "Item removed from cart", domain.LangFR: "Article retiré du panier"},
		KeyPromoEmpty:          {domain.LangEN: "Please enter a promo code", domain.LangFR: "Veuillez entrer un code promo"},
		KeyPromoInvalid:        {domain.LangEN: "Invalid promo code", domain.LangFR: "Code promo invalide"},
		KeyPromoIneligible:     {domain.LangEN: "This promo code does not apply to your cart", domain.LangFR: "Ce code promo ne s'applique pas à votre panier"},
		KeyPromoApplied:        {domain.LangEN: "Promo code applied! You save %s", domain.LangFR: "Code promo appliqué ! Vous économisez %s"},
		KeyPromoAlreadyApplied: {domain.LangEN: "A promo code has already been applied", domain.LangFR: "Un code promo a déjà été appliqué"},
		KeyLanguageChanged:     {domain.LangEN: "Language set to English", domain.LangFR: "Langue définie sur le français"},

		KeyReservationSubmitted: {domain.LangEN: "Reservation submitted successfully! We will contact you soon.", domain.LangFR: "Réservation soumise avec succès ! Nous vous contacterons bientôt."},
		KeyReservationName:      {domain.LangEN: "Please enter a valid name.", domain.LangFR: "Veuillez entrer un nom valide."},
		KeyReservationEmail:     {domain.LangEN: "Please enter a valid email address.", domain.LangFR: "Veuillez entrer une adresse email valide."},
		KeyReservationPhone:     {domain.LangEN: "Please enter a valid phone number.", domain.LangFR: "Veuillez entrer un numéro de téléphone valide."},
		KeyReservationDate:      {domain.LangEN: "Please select a date.", domain.LangFR: "Veuillez sélectionner une date."},

		KeyEmptyTitle:  {domain.LangEN: "Your cart is empty", domain.LangFR: "Votre panier est vide"},
		KeyEmptyBody:   {domain.LangEN: "Add some delicious items to your cart!", domain.LangFR: "Ajoutez de délicieux articles à votre panier !"},
		KeyBrowseMenu:  {domain.LangEN: "Browse Menu", domain.LangFR: "Voir le Menu"},
		KeyPerUnit:     {domain.LangEN: "per unit", domain.LangFR: "par unité"},
		KeyLineTotal:   {domain.LangEN: "Total", domain.LangFR: "Total"},
		KeySubtotal:    {domain.LangEN: "Subtotal", domain.LangFR: "Sous-total"},
		KeyDelivery:    {domain.LangEN: "Delivery", domain.LangFR: "Livraison"},
		KeyDiscount:    {domain.LangEN: "Discount", domain.LangFR: "Réduction"},
		KeyGrandTotal:  {domain.LangEN: "Total", domain.LangFR: "Total"},
		KeyViewCart:    {domain.LangEN: "View Cart", domain.LangFR: "Voir le Panier"},
		KeyCheckout:    {domain.LangEN: "Checkout", domain.LangFR: "Commander"},
		KeyItemOne:     {domain.LangEN: "item", domain.LangFR: "article"},
		KeyItemOther:   {domain.LangEN: "items", domain.LangFR: "articles"},
		KeyPromoPrompt: {domain.LangEN: "Promo code", domain.LangFR: "Code promo"},
	}}
}

// Resolve returns the text for key in lang. Unknown keys resolve to themselves.
func (b *Bundle) Resolve(key string, lang domain.Lang) string {
	msg, ok := b.messages[key]
	if !ok {
		return key
	}
	return msg.In(lang)
}

// Format resolves key and substitutes args into it.
func Format(l Localizer, key string, lang domain.Lang, args ...any) string {
	return fmt.Sprintf(l.Resolve(key, lang), args...)
}

// Plural picks the singular noun for exactly one, the plural otherwise.
func Plural(l Localizer, count int, lang domain.Lang) string {
	if count == 1 {
		return l.Resolve(KeyItemOne, lang)
	}
	return l.Resolve(KeyItemOther, lang)
}

// CountLabel renders "3 items" / "3 articles".
func CountLabel(l Localizer, count int, lang domain.Lang) string {
	return strconv.Itoa(count) + " " + Plural(l, count, lang)
}
