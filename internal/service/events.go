package service

import (
	logger "simulazioni-backend/pkg/logging"
	"simulazioni-backend/utilities"
)

// InitGradingEventListeners wires the listeners reacting to grading
// lifecycle events. Currently a fully-graded result is only logged; this
// is the hook point for notifications.
func InitGradingEventListeners() {
	utilities.GlobalEventBus.Subscribe(EventResultFullyGraded, func(data interface{}) {
		resultID, ok := data.(uint)
		if !ok {
			logger.Warn("fully-graded event with unexpected payload: %v", data)
			return
		}
		logger.Info("[Event] Result %d fully graded", resultID)
	})
}
