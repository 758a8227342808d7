package mysql

const upsertApprovalSQL = `
INSERT INTO review_approvals (review_id, approved)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  approved   = VALUES(approved),
  updated_at = CURRENT_TIMESTAMP
`

const getApprovalSQL = `SELECT approved FROM review_approvals WHERE review_id = ?`

// expanded with one placeholder per id
const getApprovalsPrefix = `SELECT review_id, approved FROM review_approvals WHERE review_id IN (`

const deleteApprovalSQL = `DELETE FROM review_approvals WHERE review_id = ?`

const insertFailureSQL = `
INSERT INTO ingest_failures (source, kind, message)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  message = VALUES(message),
  seen_at = CURRENT_TIMESTAMP
`
