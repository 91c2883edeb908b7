package patients

import "context"

// OwnerOf expone el ownerUserID de un paciente.
// Lo usa middleware.RequireOwner sin importar este paquete.
func (s *Service) OwnerOf(ctx context.Context, patientID string) (string, error) {
	p, err := s.GetByID(ctx, patientID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
