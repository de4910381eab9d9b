package analysis

import (
	"fmt"
	"regexp"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parsererror"
)

// personalName matches "Firstname I." in any script.
var personalName = regexp.MustCompile(`^\p{Lu}\p{Ll}+\s\p{Lu}\.$`)

// IsPersonalName reports whether description looks like a first name
// followed by an initial.
func IsPersonalName(description string) bool {
	return personalName.MatchString(description)
}

// FindP2PTransfers returns the transfer rows whose description is a
// personal name, as full records in source order. No match gives an empty,
// non-nil slice; a nil table or one lacking the category or description
// column gives nil and an error wrapping parsererror.ErrInvalidInput.
func (a *Analyzer) FindP2PTransfers(table *models.Table) ([]models.Record, error) {
	log := a.logger.WithField(logging.FieldOperation, "find_p2p_transfers")

	if table == nil {
		err := &parsererror.InvalidInputError{Operation: "find_p2p_transfers", Reason: "no transaction table"}
		log.WithError(err).Error("Cannot search P2P transfers")
		return nil, err
	}
	if err := table.Require(models.FieldCategory, models.FieldDescription); err != nil {
		invalid := &parsererror.InvalidInputError{Operation: "find_p2p_transfers", Reason: err.Error()}
		log.WithError(err).Error("Cannot search P2P transfers")
		return nil, fmt.Errorf("p2p search: %w", invalid)
	}

	result := []models.Record{}
	for i := 0; i < table.Len(); i++ {
		if table.Cell(i, models.FieldCategory) != a.opts.TransferCategory {
			continue
		}
		if IsPersonalName(table.Cell(i, models.FieldDescription)) {
			result = append(result, table.Record(i))
		}
	}

	log.Info("Searched P2P transfers",
		logging.F(logging.FieldCategory, a.opts.TransferCategory),
		logging.F(logging.FieldCount, len(result)))
	return result, nil
}
