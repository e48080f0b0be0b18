package systems

// SensorReadings holds the three trail samples taken ahead of an agent.
type SensorReadings struct {
	Left, Forward, Right float32
}

// senseAt samples the field at distance dist from (x, y) along angle.
func senseAt(f *Field, x, y, angle, dist float32) float32 {
	return f.Sample(x+cos32(angle)*dist, y+sin32(angle)*dist)
}

// Sense reads the field at the left, forward and right sensors.
// Left is angle-sensorAngle, right is angle+sensorAngle.
func Sense(f *Field, x, y, angle, sensorAngle, sensorDist float32) SensorReadings {
	return SensorReadings{
		Left:    senseAt(f, x, y, angle-sensorAngle, sensorDist),
		Forward: senseAt(f, x, y, angle, sensorDist),
		Right:   senseAt(f, x, y, angle+sensorAngle, sensorDist),
	}
}
