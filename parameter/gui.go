package parameter

const (
	// GUIHUDHeight is the status strip above the arena in window pixels
	GUIHUDHeight = 40

	// GUIOfferWidth and GUIOfferHeight size one power-up card
	GUIOfferWidth  = 420
	GUIOfferHeight = 56
	GUIOfferGap    = 14

	// GUIFlashTicks is how long a status message stays up at 60 TPS
	GUIFlashTicks = 120
)
