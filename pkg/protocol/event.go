package protocol

import "fmt"

// EventType identifies the type of client input event.
type EventType uint8

// Event type constants. Values match the thin client's wire table.
const (
	// Mouse and pointer events (0x01-0x09)
	EventClick       EventType = 0x01
	EventDblClick    EventType = 0x02
	EventMouseDown   EventType = 0x03
	EventMouseUp     EventType = 0x04
	EventPointerDown EventType = 0x09

	// Focus events
	EventFocus EventType = 0x13
	EventBlur  EventType = 0x14

	// Keyboard events
	EventKeyDown EventType = 0x20

	// Touch events (0x40-0x42)
	EventTouchStart EventType = 0x40
	EventTouchMove  EventType = 0x41
	EventTouchEnd   EventType = 0x42
)

var eventNames = map[EventType]string{
	EventClick:       "click",
	EventDblClick:    "dblclick",
	EventMouseDown:   "mousedown",
	EventMouseUp:     "mouseup",
	EventPointerDown: "pointerdown",
	EventFocus:       "focus",
	EventBlur:        "blur",
	EventKeyDown:     "keydown",
	EventTouchStart:  "touchstart",
	EventTouchMove:   "touchmove",
	EventTouchEnd:    "touchend",
}

// String returns the DOM event name, e.g. "mousedown".
func (et EventType) String() string {
	if name, ok := eventNames[et]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(et))
}

// IsPointer reports whether events of this type carry pointer coordinates.
func (et EventType) IsPointer() bool {
	switch et {
	case EventClick, EventDblClick, EventMouseDown, EventMouseUp, EventPointerDown,
		EventTouchStart, EventTouchMove, EventTouchEnd:
		return true
	}
	return false
}

// ParseEventType resolves a DOM event name to its EventType.
func ParseEventType(name string) (EventType, error) {
	for et, n := range eventNames {
		if n == name {
			return et, nil
		}
	}
	return 0, fmt.Errorf("protocol: unknown event type %q", name)
}

// Event is an input event sent by the client.
//
// Wire format:
//
//	[seq varint][type byte][hid string]
//	pointer types append [clientX svarint][clientY svarint]
//
// An empty HID means the event hit no rendered element (the page background).
type Event struct {
	Seq     uint64
	Type    EventType
	HID     string
	ClientX int
	ClientY int
}

// EncodeEvent encodes an event to bytes.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteString(e.HID)
	if e.Type.IsPointer() {
		enc.WriteSvarint(int64(e.ClientX))
		enc.WriteSvarint(int64(e.ClientY))
	}
	return enc.Bytes()
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	hid, err := d.ReadString(MaxHIDLength)
	if err != nil {
		return nil, err
	}

	e := &Event{
		Seq:  seq,
		Type: EventType(typeByte),
		HID:  hid,
	}

	if e.Type.IsPointer() {
		x, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		y, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		e.ClientX, e.ClientY = int(x), int(y)
	}

	if d.Remaining() != 0 {
		return nil, ErrTrailingBytes
	}

	return e, nil
}
