package handlers

import (
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/mocks"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

func newMember(id, name string) entities.FamilyMember {
	return entities.FamilyMember{ID: id, Name: name}
}

// family is a couple with two children; Sita is the elder child.
func family() *mocks.RelationalDB {
	return mocks.NewRelationalDB(
		entities.FamilyMember{ID: "p", Name: "Hari", Gender: entities.GenderMale, SpouseID: "m",
			ChildrenIDs: []string{"x", "s"}},
		entities.FamilyMember{ID: "m", Name: "Gita", Gender: entities.GenderFemale, SpouseID: "p",
			ChildrenIDs: []string{"x", "s"}},
		entities.FamilyMember{ID: "x", Name: "Ram", Gender: entities.GenderMale, BirthDate: "1990-01-01",
			ParentIDs: []string{"p", "m"}},
		entities.FamilyMember{ID: "s", Name: "Sita", Gender: entities.GenderFemale, BirthDate: "1987-06-30",
			ParentIDs: []string{"p", "m"}},
	)
}

func newKinshipHandler(db *mocks.RelationalDB, opts ...services.KinshipOption) *KinshipHandler {
	return NewKinshipHandler(services.NewRosterService(db), services.NewKinshipService(db, opts...))
}

func ptrMember(m entities.FamilyMember) *entities.FamilyMember { return &m }
