package hal

// Board bundles the providers a robot program runs against.
type Board struct {
	Clock        Clock
	Timer        Timer
	TimerExpired *Flag

	Line   LineSensor
	Motors Motors

	InfraredRx InfraredReceiver
	InfraredTx InfraredTransmitter

	Button          Button
	ButtonInterrupt Interrupt
	ButtonPressed   *Flag

	Bus TWI
}
