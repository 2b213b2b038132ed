package eventbus

import (
	"testing"
	"time"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	if err := eb.SendToCore(SendMessageEvent{Message: "hi"}); err != nil {
		t.Fatalf("SendToCore: %v", err)
	}
	select {
	case ev := <-eb.UIToCore():
		msg, ok := ev.(SendMessageEvent)
		if !ok || msg.Message != "hi" {
			t.Errorf("received %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event never arrived")
	}

	if err := eb.SendToUI(SaveResultEvent{}); err != nil {
		t.Fatalf("SendToUI: %v", err)
	}
	select {
	case ev := <-eb.CoreToUI():
		if _, ok := ev.(SaveResultEvent); !ok {
			t.Errorf("received %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event never arrived")
	}
}

func TestFullChannelReportsError(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) {
		reported = append(reported, e)
	})

	var err error
	for i := 0; i < 200; i++ {
		if err = eb.SendToCore(SubmitIdeaEvent{}); err != nil {
			break
		}
	}
	if err == nil {
		t.Fatal("an unconsumed channel should eventually refuse sends")
	}
	if len(reported) == 0 {
		t.Error("the error callback should have fired")
	}
}

func TestCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker(2, 50*time.Millisecond)

	if cb.IsOpen() {
		t.Fatal("breaker should start closed")
	}
	cb.RecordFailure()
	if cb.IsOpen() {
		t.Fatal("one failure should not open the breaker")
	}
	cb.RecordFailure()
	if !cb.IsOpen() {
		t.Fatal("breaker should open at the failure limit")
	}

	time.Sleep(60 * time.Millisecond)
	if cb.IsOpen() {
		t.Fatal("breaker should half-open after the reset timeout")
	}

	cb.RecordSuccess()
	if cb.IsOpen() {
		t.Fatal("a success should close the breaker")
	}
}
