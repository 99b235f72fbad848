package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createFleetIndexes()
	createJourneyIndexes()
	createPassengerIndexes()
}

func createFleetIndexes() {
	// Buses
	busesCollection := GetCollection("buses")
	busesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "busid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "mobileno", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := busesCollection.Indexes().CreateMany(context.Background(), busesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Stops (depots)
	stopsCollection := GetCollection("stops")
	stopsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts = options.CreateIndexes()
	_, err = stopsCollection.Indexes().CreateMany(context.Background(), stopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Route stops
	routeStopsCollection := GetCollection("route_stops")
	routeStopsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deponame", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = routeStopsCollection.Indexes().CreateMany(context.Background(), routeStopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createJourneyIndexes() {
	// Journeys
	journeysCollection := GetCollection("journeys")
	_, err := journeysCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "busid", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "lastupdated", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Allocations: one conductor per bus per day, and vice versa
	allocationsCollection := GetCollection("allocations")
	_, err = allocationsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "busref", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "conductorref", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Tickets
	ticketsCollection := GetCollection("tickets")
	_, err = ticketsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "passengerid", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "busid", Value: 1},
				{Key: "traveldate", Value: 1},
			},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createPassengerIndexes() {
	for _, collectionName := range []string{"passengers", "conductors", "admins"} {
		collection := GetCollection(collectionName)
		_, err := collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		}, options.CreateIndexes())
		if err != nil {
			log.Error().Err(err).Msg("Creating Index")
		}
	}
}
