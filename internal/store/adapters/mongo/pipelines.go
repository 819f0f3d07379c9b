package mongo

import (
	"regexp"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

// Los pipelines se construyen con funciones puras para poder testear su forma
// sin servidor. Toda referencia entre colecciones se normaliza a string antes
// del join: los documentos heredados guardan referencias como string u ObjectID
// y bajo distintos nombres de campo.

// refExpr devuelve la referencia canónica (string) tomando el primer alias presente.
func refExpr(fields []string) any {
	var expr any
	for i := len(fields) - 1; i >= 0; i-- {
		if expr == nil {
			expr = "$" + fields[i]
		} else {
			expr = bson.M{"$ifNull": bson.A{"$" + fields[i], expr}}
		}
	}
	return bson.M{"$toString": expr}
}

// idExpr es el _id del documento como string.
var idExpr = bson.M{"$toString": "$_id"}

// activeExpr traduce status/active del contrato embebido en un booleano.
func activeExpr(path string) bson.M {
	return bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$" + path + ".status", string(repository.StatusInactive)}},
		false,
		bson.M{"$ne": bson.A{"$" + path + ".active", false}},
	}}
}

func pageStages(p repository.Page) []bson.D {
	p = p.Bounded()
	return []bson.D{
		{{Key: "$skip", Value: int64(p.Skip)}},
		{{Key: "$limit", Value: int64(p.Limit)}},
	}
}

// lookupByRef une contra otra colección comparando _id (string) con la variable let.
func lookupByRef(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": from,
		"let":  bson.M{"ref": "$" + localField},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{idExpr, "$$ref"}}}},
		},
		"as": as,
	}}}
}

func sortByID() bson.D { return bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}} }

func unwind(path string) bson.D { return bson.D{{Key: "$unwind", Value: "$" + path}} }

// apartmentsWithContractCountPipeline pagina apartamentos y cuenta sus contratos.
func apartmentsWithContractCountPipeline(p repository.Page) mongodrv.Pipeline {
	pl := mongodrv.Pipeline{sortByID()}
	pl = append(pl, pageStages(p)...)
	return append(pl,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": collContracts,
			"let":  bson.M{"aid": idExpr},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{refExpr(fApartment), "$$aid"}}}},
				bson.M{"$project": bson.M{"_id": 1}},
			},
			"as": "contracts",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"number_of_contracts": bson.M{"$size": "$contracts"}}}},
		bson.D{{Key: "$project", Value: bson.M{"contracts": 0}}},
	)
}

// contractApartmentStages agrega el apartamento del contrato en "apartment".
func contractApartmentStages() []bson.D {
	return []bson.D{
		{{Key: "$addFields", Value: bson.M{"_aid": refExpr(fApartment), "_owner": refExpr(fOwner)}}},
		lookupByRef(collApartments, "_aid", "apartment"),
		unwind("apartment"),
	}
}

func contractWithApartmentPipeline(id primitive.ObjectID) mongodrv.Pipeline {
	pl := mongodrv.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pl = append(pl, contractApartmentStages()...)
	return append(pl, bson.D{{Key: "$limit", Value: int64(1)}})
}

// searchContractsPipeline busca sin distinguir mayúsculas por dueño o número de apartamento.
// El término se escapa: nunca se interpreta como regex.
func searchContractsPipeline(term string, p repository.Page) mongodrv.Pipeline {
	re := bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
	pl := mongodrv.Pipeline{sortByID()}
	pl = append(pl, contractApartmentStages()...)
	pl = append(pl, bson.D{{Key: "$match", Value: bson.M{"$or": bson.A{
		bson.M{"_owner": re},
		bson.M{"apartment.number": re},
	}}}})
	return append(pl, pageStages(p)...)
}

// paymentsWithContractPipeline trae los pagos de un contrato con su proyección de contrato.
func paymentsWithContractPipeline(contractID string, p repository.Page) mongodrv.Pipeline {
	pl := mongodrv.Pipeline{
		{{Key: "$match", Value: refFilter(fContract, contractID)}},
		sortByID(),
	}
	pl = append(pl, pageStages(p)...)
	return append(pl,
		bson.D{{Key: "$addFields", Value: bson.M{"_cid": refExpr(fContract)}}},
		lookupByRef(collContracts, "_cid", "contract"),
		unwind("contract"),
		bson.D{{Key: "$addFields", Value: bson.M{"contract_active": activeExpr("contract")}}},
	)
}

// paymentStatsPipeline agrupa por contrato; contractID vacío = todos.
func paymentStatsPipeline(contractID string, p repository.Page) mongodrv.Pipeline {
	var pl mongodrv.Pipeline
	if contractID != "" {
		pl = append(pl, bson.D{{Key: "$match", Value: refFilter(fContract, contractID)}})
	}
	pl = append(pl,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            refExpr(fContract),
			"total_payments": bson.M{"$sum": 1},
			"total_amount":   bson.M{"$sum": "$cost"},
			"avg_amount":     bson.M{"$avg": "$cost"},
		}}},
		sortByID(),
	)
	pl = append(pl, pageStages(p)...)
	return append(pl, bson.D{{Key: "$project", Value: bson.M{
		"_id":            0,
		"contract_id":    "$_id",
		"total_payments": 1,
		"total_amount":   1,
		"avg_amount":     1,
	}}})
}

// pendingPaymentsPipeline: pagos impagos o de contratos inactivos. Los pagos
// cuyo contrato no se resuelve quedan fuera (unwind).
func pendingPaymentsPipeline(p repository.Page) mongodrv.Pipeline {
	pl := mongodrv.Pipeline{
		sortByID(),
		{{Key: "$addFields", Value: bson.M{"_cid": refExpr(fContract)}}},
		lookupByRef(collContracts, "_cid", "contract"),
		unwind("contract"),
		{{Key: "$addFields", Value: bson.M{"contract_active": activeExpr("contract")}}},
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"is_paid": false},
			bson.M{"contract_active": false},
		}}}},
	}
	return append(pl, pageStages(p)...)
}

// pendingMaintenancePipeline cuenta mantenimientos pendientes de un apartamento.
func pendingMaintenancePipeline(apartmentID string) mongodrv.Pipeline {
	return mongodrv.Pipeline{
		{{Key: "$match", Value: and(refFilter(fApartment, apartmentID), bson.M{"status": string(repository.MaintenancePending)})}},
		{{Key: "$count", Value: "pending_count"}},
	}
}
