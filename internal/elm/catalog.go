package elm

// Sensor describes one SAE J1979 mode-01 PID: the human-readable name,
// the command string sent to the interface, the decoder applied to its
// payload, its engineering unit, and its payload length in bytes.
type Sensor struct {
	Name   string
	Cmd    string
	Decode Decoder
	Unit   string
	Length int
}

// catalog is the full mode-01 PID table (0x00-0x83), ordered by PID so
// index i holds PID i. It is immutable; per-session payload-length
// overrides (the O2-sensor-position widening of fuel-trim PIDs 0x06/
// 0x07/0x08/0x09) are tracked separately in Session.lengthOverride
// rather than mutating this table, per SPEC_FULL.md §9.
var catalog = []Sensor{
	{Name: "Supported PIDs", Cmd: "0100", Decode: decodeBitstring, Unit: "", Length: 4}, // 0100
	{Name: "Status Since DTC Cleared", Cmd: "0101", Decode: decodeStatusString, Unit: "", Length: 4}, // 0101
	{Name: "DTC Causing Freeze Frame", Cmd: "0102", Decode: decodePassthrough, Unit: "", Length: 2}, // 0102
	{Name: "Fuel System Status", Cmd: "0103", Decode: decodeFuelSystemStatus, Unit: "", Length: 2}, // 0103
	{Name: "Calculated Load Value", Cmd: "0104", Decode: decodePercentScale, Unit: "", Length: 1}, // 0104
	{Name: "Coolant Temperature", Cmd: "0105", Decode: decodeTemp, Unit: "C", Length: 1}, // 0105
	{Name: "Short Term Fuel Trim - Bank 1", Cmd: "0106", Decode: decodeFuelTrimPercent, Unit: "%", Length: 1}, // 0106
	{Name: "Long Term Fuel Trim - Bank 1", Cmd: "0107", Decode: decodeFuelTrimPercent, Unit: "%", Length: 1}, // 0107
	{Name: "Short Term Fuel Trim - Bank 2", Cmd: "0108", Decode: decodeFuelTrimPercent, Unit: "%", Length: 1}, // 0108
	{Name: "Long Term Fuel Trim - Bank 2", Cmd: "0109", Decode: decodeFuelTrimPercent, Unit: "%", Length: 1}, // 0109
	{Name: "Fuel Rail Pressure", Cmd: "010A", Decode: decodeFuelPres, Unit: "psi", Length: 1}, // 010A
	{Name: "Intake Manifold Pressure", Cmd: "010B", Decode: decodeIntakeManifoldPressure, Unit: "psi", Length: 1}, // 010B
	{Name: "Engine RPM", Cmd: "010C", Decode: decodeRPM, Unit: "RPM", Length: 2}, // 010C
	{Name: "Vehicle Speed", Cmd: "010D", Decode: decodeSpeed, Unit: "MPH", Length: 1}, // 010D
	{Name: "Timing Advance", Cmd: "010E", Decode: decodeTimingAdvance, Unit: "degrees", Length: 1}, // 010E
	{Name: "Intake Air Temp", Cmd: "010F", Decode: decodeTemp, Unit: "C", Length: 1}, // 010F
	{Name: "Air Flow Rate (MAF)", Cmd: "0110", Decode: decodeMAF, Unit: "lb/min", Length: 2}, // 0110
	{Name: "Throttle Position", Cmd: "0111", Decode: decodeThrottlePos, Unit: "%", Length: 1}, // 0111
	{Name: "Secondary Air Status", Cmd: "0112", Decode: decodePassthrough, Unit: "", Length: 1}, // 0112
	{Name: "Location of O2 sensors", Cmd: "0113", Decode: decodePassthrough, Unit: "", Length: 1}, // 0113
	{Name: "O2 Sensor: 1 - 1", Cmd: "0114", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 0114
	{Name: "O2 Sensor: 1 - 2", Cmd: "0115", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 0115
	{Name: "O2 Sensor: 1 - 3", Cmd: "0116", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 0116
	{Name: "O2 Sensor: 1 - 4", Cmd: "0117", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 0117
	{Name: "O2 Sensor: 2 - 1", Cmd: "0118", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 0118
	{Name: "O2 Sensor: 2 - 2", Cmd: "0119", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 0119
	{Name: "O2 Sensor: 2 - 3", Cmd: "011A", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 011A
	{Name: "O2 Sensor: 2 - 4", Cmd: "011B", Decode: decodeO2Voltage, Unit: "V", Length: 2}, // 011B
	{Name: "OBD Designation", Cmd: "011C", Decode: decodePassthrough, Unit: "", Length: 1}, // 011C
	{Name: "Location of O2 sensors", Cmd: "011D", Decode: decodeBitstring, Unit: "", Length: 1}, // 011D
	{Name: "Aux input status", Cmd: "011E", Decode: decodePassthrough, Unit: "", Length: 1}, // 011E
	{Name: "Time Since Engine Start", Cmd: "011F", Decode: decodeSecToMin, Unit: "min", Length: 2}, // 011F
	{Name: "Supported PIDs", Cmd: "0120", Decode: decodeBitstring, Unit: "", Length: 4}, // 0120
	{Name: "Distance Traveled w/ MIL", Cmd: "0121", Decode: decodeKmToMi, Unit: "mi", Length: 2}, // 0121
	{Name: "Fuel Rail Pressure", Cmd: "0122", Decode: decodeRelFuelPres, Unit: "psi", Length: 2}, // 0122
	{Name: "Fuel Rail Pressure", Cmd: "0123", Decode: decodeFuelPres10, Unit: "psi", Length: 2}, // 0123
	{Name: "Air/Fuel Sensor: 1 - 1", Cmd: "0124", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0124
	{Name: "Air/Fuel Sensor: 1 - 2", Cmd: "0125", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0125
	{Name: "Air/Fuel Sensor: 1 - 3", Cmd: "0126", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0126
	{Name: "Air/Fuel Sensor: 1 - 4", Cmd: "0127", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0127
	{Name: "Air/Fuel Sensor: 2 - 1", Cmd: "0128", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0128
	{Name: "Air/Fuel Sensor: 2 - 2", Cmd: "0129", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0129
	{Name: "Air/Fuel Sensor: 2 - 3", Cmd: "012A", Decode: decodeEqRatio, Unit: "", Length: 4}, // 012A
	{Name: "Air/Fuel Sensor: 2 - 4", Cmd: "012B", Decode: decodeEqRatio, Unit: "", Length: 4}, // 012B
	{Name: "Commanded EGR %", Cmd: "012C", Decode: decodePercentScale, Unit: "%", Length: 1}, // 012C
	{Name: "EGR Error %", Cmd: "012D", Decode: decodeFuelTrimPercent, Unit: "%", Length: 1}, // 012D
	{Name: "Commanded Evaporative Purge", Cmd: "012E", Decode: decodePercentScale, Unit: "%", Length: 1}, // 012E
	{Name: "Fuel Level", Cmd: "012F", Decode: decodePercentScale, Unit: "%", Length: 1}, // 012F
	{Name: "Warm-ups Since Codes Clear", Cmd: "0130", Decode: decodeHexInt, Unit: "", Length: 1}, // 0130
	{Name: "Distance Since Codes Clear", Cmd: "0131", Decode: decodeKmToMi, Unit: "mi", Length: 2}, // 0131
	{Name: "Evap Vapor Pressure", Cmd: "0132", Decode: decodeEvapPres, Unit: "Pa", Length: 2}, // 0132
	{Name: "Barometric Pressure", Cmd: "0133", Decode: decodeIntakeManifoldPressure, Unit: "psi", Length: 1}, // 0133
	{Name: "Air/Fuel Sensor: 1 - 1", Cmd: "0134", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0134
	{Name: "Air/Fuel Sensor: 1 - 2", Cmd: "0135", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0135
	{Name: "Air/Fuel Sensor: 1 - 3", Cmd: "0136", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0136
	{Name: "Air/Fuel Sensor: 1 - 4", Cmd: "0137", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0137
	{Name: "Air/Fuel Sensor: 2 - 1", Cmd: "0138", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0138
	{Name: "Air/Fuel Sensor: 2 - 2", Cmd: "0139", Decode: decodeEqRatio, Unit: "", Length: 4}, // 0139
	{Name: "Air/Fuel Sensor: 2 - 3", Cmd: "013A", Decode: decodeEqRatio, Unit: "", Length: 4}, // 013A
	{Name: "Air/Fuel Sensor: 2 - 4", Cmd: "013B", Decode: decodeEqRatio, Unit: "", Length: 4}, // 013B
	{Name: "Catalyst Temp - Bank 1, Sensor 1", Cmd: "013C", Decode: decodeTemp, Unit: "C", Length: 2}, // 013C
	{Name: "Catalyst Temp - Bank 2, Sensor 1", Cmd: "013D", Decode: decodeTemp, Unit: "C", Length: 2}, // 013D
	{Name: "Catalyst Temp - Bank 1, Sensor 2", Cmd: "013E", Decode: decodeTemp, Unit: "C", Length: 2}, // 013E
	{Name: "Catalyst Temp - Bank 2, Sensor 2", Cmd: "013F", Decode: decodeTemp, Unit: "C", Length: 2}, // 013F
	{Name: "Supported PIDs", Cmd: "0140", Decode: decodeBitstring, Unit: "", Length: 4}, // 0140
	{Name: "Monitor Status - Current", Cmd: "0141", Decode: decodePassthrough, Unit: "", Length: 4}, // 0141
	{Name: "Control Module Voltage", Cmd: "0142", Decode: decodeCMVoltage, Unit: "V", Length: 2}, // 0142
	{Name: "Absolute Load %", Cmd: "0143", Decode: decodeAbsLoadPercent, Unit: "%", Length: 2}, // 0143
	{Name: "Commanded Equivalence Ratio", Cmd: "0144", Decode: decodeEqRatio, Unit: "", Length: 2}, // 0144
	{Name: "Relative Throttle Position", Cmd: "0145", Decode: decodePercentScale, Unit: "%", Length: 1}, // 0145
	{Name: "Ambient Air Temperature", Cmd: "0146", Decode: decodeTemp, Unit: "C", Length: 1}, // 0146
	{Name: "Absolute Throttle Position B", Cmd: "0147", Decode: decodePercentScale, Unit: "%", Length: 1}, // 0147
	{Name: "Absolute Throttle Position C", Cmd: "0148", Decode: decodePercentScale, Unit: "%", Length: 1}, // 0148
	{Name: "Accelerator Pedal Position", Cmd: "0149", Decode: decodePercentScale, Unit: "%", Length: 1}, // 0149
	{Name: "Accelerator Pedal Position E", Cmd: "014A", Decode: decodePercentScale, Unit: "%", Length: 1}, // 014A
	{Name: "Accelerator Pedal Position F", Cmd: "014B", Decode: decodePercentScale, Unit: "%", Length: 1}, // 014B
	{Name: "Commanded Throttle Actuator", Cmd: "014C", Decode: decodePercentScale, Unit: "%", Length: 1}, // 014C
	{Name: "Time Run with MIL on", Cmd: "014D", Decode: decodeHexInt, Unit: "min", Length: 2}, // 014D
	{Name: "Engine Run with MIL on", Cmd: "014E", Decode: decodeHexInt, Unit: "min", Length: 2}, // 014E
	{Name: "Max Equivalence Ratio", Cmd: "014F", Decode: decodeHexInt, Unit: "", Length: 4}, // 014F
	{Name: "Max Air Flow Rate", Cmd: "0150", Decode: decodeHexInt, Unit: "", Length: 4}, // 0150
	{Name: "Fuel Type", Cmd: "0151", Decode: decodePassthrough, Unit: "", Length: 1}, // 0151
	{Name: "Alcohol Fuel %", Cmd: "0152", Decode: decodePercentScale, Unit: "%", Length: 1}, // 0152
	{Name: "Absolute Vapor Pressure", Cmd: "0153", Decode: decodeAbsVaporPres, Unit: "psi", Length: 2}, // 0153
	{Name: "Evap Vapor Pressure", Cmd: "0154", Decode: decodeEvapPres2, Unit: "Pa", Length: 2}, // 0154
	{Name: "Secondary O2 STFT - Bank 1", Cmd: "0155", Decode: decodeFuelTrimPercent, Unit: "%", Length: 2}, // 0155
	{Name: "Secondary O2 LTFT - Bank 1", Cmd: "0156", Decode: decodeFuelTrimPercent, Unit: "%", Length: 2}, // 0156
	{Name: "Secondary O2 STFT - Bank 2", Cmd: "0157", Decode: decodeFuelTrimPercent, Unit: "%", Length: 2}, // 0157
	{Name: "Secondary O2 LTFT - Bank 2", Cmd: "0158", Decode: decodeFuelTrimPercent, Unit: "%", Length: 2}, // 0158
	{Name: "Abs Fuel Rail Pressure", Cmd: "0159", Decode: decodeFuelPres10, Unit: "psi", Length: 2}, // 0159
	{Name: "Relative Acc Pedal Position", Cmd: "015A", Decode: decodePercentScale, Unit: "%", Length: 1}, // 015A
	{Name: "Hybrid Batt Remaining Life", Cmd: "015B", Decode: decodePercentScale, Unit: "%", Length: 1}, // 015B
	{Name: "Engine Oil Temperature", Cmd: "015C", Decode: decodeTemp, Unit: "C", Length: 1}, // 015C
	{Name: "Fuel Injection Timing", Cmd: "015D", Decode: decodeInjectionTiming, Unit: "degrees", Length: 2}, // 015D
	{Name: "Engine Fuel Rate", Cmd: "015E", Decode: decodeFuelRate, Unit: "gal/h", Length: 2}, // 015E
	{Name: "Emmission Requirement", Cmd: "015F", Decode: decodePassthrough, Unit: "", Length: 1}, // 015F
	{Name: "Supported PIDs", Cmd: "0160", Decode: decodeBitstring, Unit: "", Length: 4}, // 0160
	{Name: "Requested Torque", Cmd: "0161", Decode: decodeReqTorque, Unit: "%", Length: 1}, // 0161
	{Name: "Actual Torque", Cmd: "0162", Decode: decodeReqTorque, Unit: "%", Length: 1}, // 0162
	{Name: "Reference Torque", Cmd: "0163", Decode: decodeRefTorque, Unit: "lbf*ft", Length: 2}, // 0163
	{Name: "Engine % Torque Data", Cmd: "0164", Decode: decodePassthrough, Unit: "", Length: 5}, // 0164
	{Name: "Auxiliary Inputs/Outputs", Cmd: "0165", Decode: decodePassthrough, Unit: "", Length: 2}, // 0165
	{Name: "MAF Sensor Data", Cmd: "0166", Decode: decodePassthrough, Unit: "", Length: 5}, // 0166
	{Name: "ECT Sensor Data", Cmd: "0167", Decode: decodePassthrough, Unit: "", Length: 3}, // 0167
	{Name: "IAT Sensor Data", Cmd: "0168", Decode: decodePassthrough, Unit: "", Length: 7}, // 0168
	{Name: "Cmd EGR/EGR Error", Cmd: "0169", Decode: decodePassthrough, Unit: "", Length: 7}, // 0169
	{Name: "Diesel Intake Air", Cmd: "016A", Decode: decodePassthrough, Unit: "", Length: 5}, // 016A
	{Name: "EGR Temp", Cmd: "016B", Decode: decodePassthrough, Unit: "", Length: 5}, // 016B
	{Name: "Cmd Throtlle Actuator", Cmd: "016C", Decode: decodePassthrough, Unit: "", Length: 5}, // 016C
	{Name: "Fuel Pressure Control", Cmd: "016D", Decode: decodePassthrough, Unit: "", Length: 6}, // 016D
	{Name: "Injection Pressure Control", Cmd: "016E", Decode: decodePassthrough, Unit: "", Length: 5}, // 016E
	{Name: "Turbo Compressor Pressure", Cmd: "016F", Decode: decodePassthrough, Unit: "", Length: 3}, // 016F
	{Name: "Boost Pressure Control", Cmd: "0170", Decode: decodePassthrough, Unit: "", Length: 9}, // 0170
	{Name: "Turbo Control", Cmd: "0171", Decode: decodePassthrough, Unit: "", Length: 5}, // 0171
	{Name: "Wastegate Control", Cmd: "0172", Decode: decodePassthrough, Unit: "", Length: 5}, // 0172
	{Name: "Exhaust Pressure", Cmd: "0173", Decode: decodePassthrough, Unit: "", Length: 5}, // 0173
	{Name: "Turbo Charger RPM", Cmd: "0174", Decode: decodePassthrough, Unit: "", Length: 5}, // 0174
	{Name: "Turbo Charger Temp A", Cmd: "0175", Decode: decodePassthrough, Unit: "", Length: 7}, // 0175
	{Name: "Turbo Charger Temp B", Cmd: "0176", Decode: decodePassthrough, Unit: "", Length: 7}, // 0176
	{Name: "Charge Air Cooler Temp", Cmd: "0177", Decode: decodePassthrough, Unit: "", Length: 5}, // 0177
	{Name: "Exhaust Temp - Bank 1", Cmd: "0178", Decode: decodePassthrough, Unit: "", Length: 9}, // 0178
	{Name: "Exhaust Temp - Bank 2", Cmd: "0179", Decode: decodePassthrough, Unit: "", Length: 9}, // 0179
	{Name: "Diesel Filter - Bank 1", Cmd: "017A", Decode: decodePassthrough, Unit: "", Length: 7}, // 017A
	{Name: "Diesel Filter - Bank 2", Cmd: "017B", Decode: decodePassthrough, Unit: "", Length: 7}, // 017B
	{Name: "Diesel Filter Temp", Cmd: "017C", Decode: decodePassthrough, Unit: "", Length: 9}, // 017C
	{Name: "NOx NTE Control", Cmd: "017D", Decode: decodePassthrough, Unit: "", Length: 1}, // 017D
	{Name: "PM NTE Control", Cmd: "017E", Decode: decodePassthrough, Unit: "", Length: 1}, // 017E
	{Name: "Engine Run Time", Cmd: "017F", Decode: decodePassthrough, Unit: "", Length: 13}, // 017F
	{Name: "Supported PIDs", Cmd: "0180", Decode: decodeBitstring, Unit: "", Length: 4}, // 0180
	{Name: "Engine Run Time AECD", Cmd: "0181", Decode: decodePassthrough, Unit: "", Length: 21}, // 0181
	{Name: "Engine Run Time AECD", Cmd: "0182", Decode: decodePassthrough, Unit: "", Length: 21}, // 0182
	{Name: "NOx Sensor", Cmd: "0183", Decode: decodePassthrough, Unit: "", Length: 5}, // 0183
}

// lookupPID returns the catalog entry for a 2-hex-digit PID string
// (e.g. "0C" for RPM), or false if the PID is not in the table.
func lookupPID(pid string) (Sensor, bool) {
	n, err := hexToInt(pid)
	if err != nil || n < 0 || int(n) >= len(catalog) {
		return Sensor{}, false
	}
	return catalog[n], true
}
