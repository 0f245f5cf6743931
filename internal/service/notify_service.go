package service

import (
	"fmt"
	"log"

	"parking_booking/internal/domain"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioNotifier sends booking confirmations and receipts by SMS to the
// owner's phone. Failures are logged, never propagated: a lost SMS must not
// fail a committed reservation.
type TwilioNotifier struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioNotifier(accountSid, authToken, fromNumber string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &TwilioNotifier{client: client, fromNumber: fromNumber}
}

func (n *TwilioNotifier) BookingConfirmed(booking *domain.Booking, areaName string, slotNumber int) {
	message := fmt.Sprintf("Your parking slot is reserved: %s slot #%d (%s) at %s. Booking code: %s",
		booking.VehicleType, slotNumber, booking.VehiclePlate, areaName, booking.Code)
	n.send(booking.UserPhone, message)
}

func (n *TwilioNotifier) BookingCompleted(booking *domain.Booking) {
	message := fmt.Sprintf("Your parking booking %s is complete.", booking.Code)
	if booking.Amount.Valid {
		message = fmt.Sprintf("Your parking booking %s is complete. Amount charged: %.2f", booking.Code, booking.Amount.Float64)
	}
	n.send(booking.UserPhone, message)
}

func (n *TwilioNotifier) send(to, body string) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.fromNumber)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
	}
}
