package messaging

import (
	"fmt"
)

type exampleDoor struct {
	name string
}

type exampleMonitor struct {
	alerts int
}

func ExampleSubscribeFrom() {
	bus := NewBus()
	front := &exampleDoor{name: "front"}
	back := &exampleDoor{name: "back"}
	monitor := new(exampleMonitor)

	// The monitor only cares about the front door, and is passed to the callback so it doesn't have to be captured.
	_ = SubscribeFrom(bus, monitor, "DoorOpened", front, func(m *exampleMonitor, door *exampleDoor, _ Empty) error {
		m.alerts++
		fmt.Printf("%s door opened (alert #%d)\n", door.name, m.alerts)
		return nil
	})
	// Generic subscriptions see every sender, but never the sender itself.
	_ = Subscribe(bus, monitor, "DoorOpened", func(m *exampleMonitor, _ Empty) error {
		fmt.Println("some door opened")
		return nil
	})

	_ = Signal(bus, back, "DoorOpened")
	_ = Signal(bus, front, "DoorOpened")

	_ = UnsubscribeFrom[*exampleDoor, Empty](bus, monitor, "DoorOpened")
	_ = Signal(bus, front, "DoorOpened")
	fmt.Println("alerts:", monitor.alerts)

	// Output:
	// some door opened
	// front door opened (alert #1)
	// some door opened
	// some door opened
	// alerts: 1
}
