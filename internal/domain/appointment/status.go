package appointment

// ===============================
// Appointment lifecycle
// ===============================

// An appointment only exists while booked. Cancellation and expiry both
// delete the row, so the end states are never stored.

// DefaultService is used when a booking does not name one.
const DefaultService = "Corte"
