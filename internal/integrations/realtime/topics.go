package realtime

import (
	"fmt"
	"strings"
)

const destinationPrefix = "/topic/"

const (
	kindPatientConfirmations  = "patient_confirmations"
	kindDoctorPendingRequests = "doctor_pending_requests"
	kindOther                 = "other"
)

// PatientConfirmationsTopic топик подтверждений бронирований пациента
func PatientConfirmationsTopic(phone string) string {
	return fmt.Sprintf("patient/%s/confirmations", phone)
}

// DoctorPendingRequestsTopic топик новых запросов врача
func DoctorPendingRequestsTopic(doctorID int64) string {
	return fmt.Sprintf("doctor/%d/pending-requests", doctorID)
}

func destination(topic string) string {
	return destinationPrefix + strings.TrimPrefix(topic, "/")
}

// topicKind метка топика для метрик без телефонов и идентификаторов
func topicKind(topic string) string {
	switch {
	case strings.HasPrefix(topic, "patient/") && strings.HasSuffix(topic, "/confirmations"):
		return kindPatientConfirmations
	case strings.HasPrefix(topic, "doctor/") && strings.HasSuffix(topic, "/pending-requests"):
		return kindDoctorPendingRequests
	default:
		return kindOther
	}
}
