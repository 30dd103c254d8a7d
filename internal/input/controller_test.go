package input

import "testing"

func TestNew_ShouldCreateControllerWithDefaultState(t *testing.T) {
	controller := New()

	if controller.buttons != 0 {
		t.Errorf("Expected initial buttons state 0, got %d", controller.buttons)
	}
	if controller.shiftRegister != 0 {
		t.Errorf("Expected initial shift register 0, got %d", controller.shiftRegister)
	}
	if controller.strobe != false {
		t.Error("Expected initial strobe false, got true")
	}
}

func TestSetButton_ShouldUpdateButtonState(t *testing.T) {
	controller := New()

	buttons := []Button{
		ButtonA, ButtonB, ButtonSelect, ButtonStart,
		ButtonUp, ButtonDown, ButtonLeft, ButtonRight,
	}

	for _, button := range buttons {
		controller.SetButton(button, true)

		if !controller.IsPressed(button) {
			t.Errorf("Button %d should be pressed after SetButton(true)", button)
		}
		if controller.buttons != uint8(button) {
			t.Errorf("Expected buttons state %d, got %d", uint8(button), controller.buttons)
		}

		controller.SetButton(button, false)

		if controller.IsPressed(button) {
			t.Errorf("Button %d should not be pressed after SetButton(false)", button)
		}
	}
}

func TestSetButton_MultipleButtons_ShouldCombineStates(t *testing.T) {
	controller := New()

	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonB, true)
	controller.SetButton(ButtonStart, true)

	expectedState := uint8(ButtonA) | uint8(ButtonB) | uint8(ButtonStart)
	if controller.buttons != expectedState {
		t.Errorf("Expected combined button state %d, got %d", expectedState, controller.buttons)
	}

	if !controller.IsPressed(ButtonA) || !controller.IsPressed(ButtonB) || !controller.IsPressed(ButtonStart) {
		t.Error("expected ButtonA, ButtonB, ButtonStart to be pressed")
	}
	if controller.IsPressed(ButtonSelect) {
		t.Error("ButtonSelect should not be pressed")
	}
}

func TestSetButtons_ArrayOrder_ShouldMatchNESOrder(t *testing.T) {
	controller := New()
	controller.SetButtons([8]bool{true, false, false, true, false, false, false, true})

	expected := uint8(ButtonA) | uint8(ButtonStart) | uint8(ButtonRight)
	if controller.buttons != expected {
		t.Errorf("expected buttons 0x%02X, got 0x%02X", expected, controller.buttons)
	}
}

func TestWriteOutput_StrobeLow_ShouldNotReloadShiftRegister(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonB, true)

	controller.WriteOutput(0x00)

	if controller.strobe {
		t.Error("strobe should be false after writing 0")
	}
	if controller.shiftRegister != 0 {
		t.Errorf("shift register should remain 0, got %d", controller.shiftRegister)
	}
}

func TestWriteOutput_StrobeHigh_ShouldLatchButtons(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonB, true)

	expectedButtons := uint8(ButtonA) | uint8(ButtonB)
	controller.WriteOutput(0x01)

	if !controller.strobe {
		t.Error("strobe should be true after writing 1")
	}
	if controller.shiftRegister != expectedButtons {
		t.Errorf("shift register should be %d, got %d", expectedButtons, controller.shiftRegister)
	}
}

func TestWriteOutput_OnlyBit0Matters(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)

	controller.WriteOutput(0xFF)
	if !controller.strobe {
		t.Error("strobe should be true (bit 0 set)")
	}

	controller.WriteOutput(0xFE)
	if controller.strobe {
		t.Error("strobe should be false (bit 0 clear)")
	}
}

func TestReadInput_StrobeActive_ShouldReturnLiveButtonA(t *testing.T) {
	controller := New()

	controller.WriteOutput(0x01)
	if value := controller.ReadInput(); value != 0 {
		t.Errorf("expected 0 with ButtonA unpressed, got %d", value)
	}

	controller.SetButton(ButtonA, true)
	if value := controller.ReadInput(); value != 1 {
		t.Errorf("expected 1 with ButtonA pressed while strobe held, got %d", value)
	}
}

func TestReadInput_StrobeInactive_ShouldShiftButtonsInOrder(t *testing.T) {
	controller := New()

	// A and Start pressed (bits 0 and 3)
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonStart, true)

	controller.WriteOutput(0x01)
	controller.WriteOutput(0x00)

	expectedSequence := []uint8{1, 0, 0, 1, 0, 0, 0, 0} // A,B,Select,Start,Up,Down,Left,Right
	for i, want := range expectedSequence {
		got := controller.ReadInput()
		if got != want {
			t.Errorf("read %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestReadInput_PastEighthRead_ShouldReturnOnes(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)

	controller.WriteOutput(0x01)
	controller.WriteOutput(0x00)

	for i := 0; i < 8; i++ {
		controller.ReadInput()
	}

	for i := 0; i < 5; i++ {
		if got := controller.ReadInput(); got != 1 {
			t.Errorf("extended read %d: expected 1, got %d", i, got)
		}
	}
}

func TestReadInput_ButtonChangeDuringStrobe_UsesLiveState(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.WriteOutput(0x01)

	controller.SetButton(ButtonA, false)

	if got := controller.ReadInput(); got != 0 {
		t.Errorf("expected live (now unpressed) ButtonA state, got %d", got)
	}
}

func TestReadInput_ButtonChangeAfterStrobeCleared_UsesSnapshot(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonB, true)

	controller.WriteOutput(0x01)
	controller.WriteOutput(0x00)

	controller.SetButton(ButtonA, false)
	controller.SetButton(ButtonSelect, true)

	if got := controller.ReadInput(); got != 1 {
		t.Errorf("first read: expected 1 (A pressed in snapshot), got %d", got)
	}
	if got := controller.ReadInput(); got != 1 {
		t.Errorf("second read: expected 1 (B pressed in snapshot), got %d", got)
	}
	if got := controller.ReadInput(); got != 0 {
		t.Errorf("third read: expected 0 (Select not pressed in snapshot), got %d", got)
	}
}

func TestReset_ShouldClearAllState(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonB, true)
	controller.WriteOutput(0x01)

	controller.Reset()

	if controller.buttons != 0 || controller.shiftRegister != 0 || controller.strobe {
		t.Error("expected all state cleared after Reset")
	}
}

func TestNewInputState_ShouldCreateTwoControllers(t *testing.T) {
	inputState := NewInputState()

	if inputState.Controller1 == nil || inputState.Controller2 == nil {
		t.Fatal("expected both controllers to be non-nil")
	}
	if inputState.Controller1 == inputState.Controller2 {
		t.Error("Controller1 and Controller2 should be different instances")
	}
}

func TestInputState_Reset_ShouldResetBothControllers(t *testing.T) {
	inputState := NewInputState()
	inputState.Controller1.SetButton(ButtonA, true)
	inputState.Controller2.SetButton(ButtonB, true)
	inputState.Controller1.WriteOutput(0x01)
	inputState.Controller2.WriteOutput(0x01)

	inputState.Reset()

	if inputState.Controller1.buttons != 0 || inputState.Controller2.buttons != 0 {
		t.Error("both controllers should be reset")
	}
	if inputState.Controller1.strobe || inputState.Controller2.strobe {
		t.Error("both controllers' strobe should be false after reset")
	}
}

func TestInputState_Read_ShouldRouteToCorrectController(t *testing.T) {
	inputState := NewInputState()
	inputState.Controller1.SetButton(ButtonA, true)
	inputState.Controller2.SetButton(ButtonB, true)

	inputState.Controller1.WriteOutput(0x01)
	inputState.Controller2.WriteOutput(0x01)

	value1 := inputState.Read(0x4016)
	value2 := inputState.Read(0x4017)

	if value1 != 1 {
		t.Errorf("controller 1 read: expected 1 (ButtonA pressed), got %d", value1)
	}
	// ButtonB isn't bit 0, and ReadInputTwo ORs in open-bus bit 6.
	if value2 != 0x40 {
		t.Errorf("controller 2 read: expected 0x40 (bit 0 unpressed + open-bus bit 6), got 0x%02X", value2)
	}
}

func TestInputState_Read_InvalidAddress_ShouldReturnZero(t *testing.T) {
	inputState := NewInputState()

	for _, addr := range []uint16{0x4015, 0x4018, 0x5000, 0x0000, 0xFFFF} {
		if value := inputState.Read(addr); value != 0 {
			t.Errorf("invalid address 0x%04X should return 0, got %d", addr, value)
		}
	}
}

func TestInputState_Write_ShouldWriteToBothControllers(t *testing.T) {
	inputState := NewInputState()
	inputState.Controller1.SetButton(ButtonA, true)
	inputState.Controller2.SetButton(ButtonB, true)

	inputState.Write(0x4016, 0x01)

	if !inputState.Controller1.strobe || !inputState.Controller2.strobe {
		t.Error("both controllers should have strobe enabled after $4016 write")
	}
	if inputState.Controller1.shiftRegister != uint8(ButtonA) {
		t.Error("Controller1 shift register should contain ButtonA")
	}
	if inputState.Controller2.shiftRegister != uint8(ButtonB) {
		t.Error("Controller2 shift register should contain ButtonB")
	}
}

func TestInputState_Write_InvalidAddress_ShouldBeIgnored(t *testing.T) {
	inputState := NewInputState()
	inputState.Controller1.SetButton(ButtonA, true)
	initialButtons := inputState.Controller1.buttons
	initialStrobe := inputState.Controller1.strobe

	inputState.Write(0x4017, 0x01) // controller-2 port is read-only
	inputState.Write(0x5000, 0x01)

	if inputState.Controller1.buttons != initialButtons || inputState.Controller1.strobe != initialStrobe {
		t.Error("Controller1 state should be unchanged after invalid writes")
	}
}

func TestControllerReadingSequence_StandardPattern_ShouldMatchExpected(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonStart, true)
	controller.SetButton(ButtonRight, true)

	controller.WriteOutput(0x01)
	controller.WriteOutput(0x00)

	expectedSequence := []uint8{1, 0, 0, 1, 0, 0, 0, 1} // A,B,Select,Start,Up,Down,Left,Right
	for i, want := range expectedSequence {
		if got := controller.ReadInput(); got != want {
			t.Errorf("position %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestController_RapidStrobeCycle_ShouldWorkCorrectly(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)

	for i := 0; i < 10; i++ {
		controller.WriteOutput(0x01)
		controller.WriteOutput(0x00)

		if got := controller.ReadInput(); got != 1 {
			t.Errorf("rapid cycle %d: expected 1, got %d", i, got)
		}
	}
}

func TestController_IncompleteReadSequence_ResetsOnReStrobe(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.SetButton(ButtonSelect, true)

	controller.WriteOutput(0x01)
	controller.WriteOutput(0x00)

	if got := controller.ReadInput(); got != 1 {
		t.Errorf("first read: expected 1, got %d", got)
	}
	if got := controller.ReadInput(); got != 0 {
		t.Errorf("second read: expected 0, got %d", got)
	}

	// Re-strobe mid-sequence should restart it from A.
	controller.WriteOutput(0x01)
	controller.WriteOutput(0x00)

	if got := controller.ReadInput(); got != 1 {
		t.Errorf("after re-strobe: expected 1, got %d", got)
	}
}

func BenchmarkController_SetButton(b *testing.B) {
	controller := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		controller.SetButton(ButtonA, true)
		controller.SetButton(ButtonA, false)
	}
}

func BenchmarkController_ReadSequence(b *testing.B) {
	controller := New()
	controller.SetButton(ButtonA, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		controller.WriteOutput(0x01)
		controller.WriteOutput(0x00)
		for j := 0; j < 8; j++ {
			controller.ReadInput()
		}
	}
}

func BenchmarkInputState_DualController(b *testing.B) {
	inputState := NewInputState()
	inputState.Controller1.SetButton(ButtonA, true)
	inputState.Controller2.SetButton(ButtonB, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inputState.Write(0x4016, 0x01)
		inputState.Write(0x4016, 0x00)
		for j := 0; j < 8; j++ {
			inputState.Read(0x4016)
			inputState.Read(0x4017)
		}
	}
}
