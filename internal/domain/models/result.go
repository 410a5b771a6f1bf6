package models

// TriggerType identifies what caused a purge.
type TriggerType string

const (
	TriggerPostPublish TriggerType = "POST_PUBLISH"
	TriggerPostUpdate  TriggerType = "POST_UPDATE"
	TriggerPageUpdate  TriggerType = "PAGE_UPDATE"
	TriggerComment     TriggerType = "COMMENT"
	TriggerManual      TriggerType = "MANUAL"
)

// PurgeResult is the uniform outcome of one provider purge call. Adapters
// never return errors; every failure mode collapses into Success=false with a
// diagnostic message.
type PurgeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	TaskID  string `json:"taskId,omitempty"`
}

// Succeeded builds a successful result carrying the vendor task id.
func Succeeded(taskID string) PurgeResult {
	return PurgeResult{Success: true, TaskID: taskID}
}

// SucceededWithMessage builds a successful result with an explanatory
// message, used for partial generic-purge outcomes.
func SucceededWithMessage(taskID, message string) PurgeResult {
	return PurgeResult{Success: true, TaskID: taskID, Message: message}
}

// Failed builds a failure result.
func Failed(message string) PurgeResult {
	return PurgeResult{Success: false, Message: message}
}
