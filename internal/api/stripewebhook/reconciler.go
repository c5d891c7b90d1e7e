package stripewebhooks

import (
	"errors"
	"fmt"
	"log"
	"time"

	"sellify-app/database"
	"sellify-app/internal/domain/billing"
	"sellify-app/internal/domain/submissions"

	"gorm.io/gorm"
)

// The reconciler resolves payments strictly by stored Stripe identifiers.
// A session/intent with no matching Payment belongs to another system or
// environment: log and no-op, never create partial records.

func findPaymentBySession(sessionID string) (*billing.Payment, error) {
	if sessionID == "" {
		return nil, nil
	}
	var pay billing.Payment
	err := database.DB.Where("stripe_session_id = ?", sessionID).First(&pay).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("webhook: no payment for session %s, skipping", sessionID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up payment by session %s: %w", sessionID, err)
	}
	return &pay, nil
}

// findPaymentByIntent resolves by the stored intent id first, falling back
// to the submission_id metadata stamped onto the intent at session creation.
// The fallback covers a payment_intent event arriving before (or instead of)
// checkout.session.completed, when no intent id was stored yet.
func findPaymentByIntent(intentID string, metadata map[string]string) (*billing.Payment, error) {
	if intentID != "" {
		var pay billing.Payment
		err := database.DB.Where("stripe_payment_intent_id = ?", intentID).First(&pay).Error
		if err == nil {
			return &pay, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up payment by intent %s: %w", intentID, err)
		}
	}

	if sid := metadata["submission_id"]; sid != "" {
		var pay billing.Payment
		err := database.DB.Where("submission_id = ?", sid).First(&pay).Error
		if err == nil {
			return &pay, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up payment for submission %s: %w", sid, err)
		}
	}

	log.Printf("webhook: no payment for intent %s, skipping", intentID)
	return nil, nil
}

// applyCompleted moves a payment and its submission to completed inside one
// transaction. Illegal transitions (late payment_intent.succeeded after
// completion) are logged no-ops.
func applyCompleted(pay *billing.Payment, intentID, receiptURL string) error {
	if !pay.Status.CanTransitionTo(billing.StatusCompleted) {
		if pay.Status != billing.StatusCompleted {
			log.Printf("webhook: payment %d is %s, not completing", pay.ID, pay.Status)
		}
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":               billing.StatusCompleted,
			"webhook_processed":    true,
			"payment_completed_at": now,
			"last_error":           nil,
		}
		if intentID != "" {
			updates["stripe_payment_intent_id"] = intentID
		}
		if receiptURL != "" {
			updates["receipt_url"] = receiptURL
		}
		if err := tx.Model(&billing.Payment{}).
			Where("id = ?", pay.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to complete payment %d: %w", pay.ID, err)
		}

		if pay.SubmissionID != nil {
			if err := tx.Model(&submissions.Submission{}).
				Where("id = ?", *pay.SubmissionID).
				Updates(map[string]interface{}{
					"payment_status": submissions.PaymentCompleted,
					"payment_id":     pay.ID,
				}).Error; err != nil {
				return fmt.Errorf("failed to cascade completion to submission %d: %w", *pay.SubmissionID, err)
			}
		}
		return nil
	})
}

// applyFailed moves a payment and its submission to failed. The gateway
// error message is stored for the seller dashboard only.
func applyFailed(pay *billing.Payment, intentID, lastError string) error {
	if !pay.Status.CanTransitionTo(billing.StatusFailed) {
		log.Printf("webhook: payment %d is %s, not failing", pay.ID, pay.Status)
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":            billing.StatusFailed,
			"webhook_processed": true,
		}
		if intentID != "" {
			updates["stripe_payment_intent_id"] = intentID
		}
		if lastError != "" {
			updates["last_error"] = lastError
		}
		if err := tx.Model(&billing.Payment{}).
			Where("id = ?", pay.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to fail payment %d: %w", pay.ID, err)
		}

		if pay.SubmissionID != nil {
			if err := tx.Model(&submissions.Submission{}).
				Where("id = ?", *pay.SubmissionID).
				Updates(map[string]interface{}{
					"payment_status": submissions.PaymentFailed,
					"payment_id":     pay.ID,
				}).Error; err != nil {
				return fmt.Errorf("failed to cascade failure to submission %d: %w", *pay.SubmissionID, err)
			}
		}
		return nil
	})
}
