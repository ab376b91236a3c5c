package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	grpcHandler "github.com/anthanhphan/go-snowflake/internal/idgen/adapter/inbound/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
)

func main() {
	var (
		addr    string
		count   uint
		decode  string
		timeout time.Duration
	)
	flag.StringVar(&addr, "addr", "localhost:9090", "Address of the ID generator gRPC server")
	flag.UintVar(&count, "count", 1, "Number of IDs to mint")
	flag.StringVar(&decode, "decode", "", "Decode this ID instead of minting")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")
	flag.Parse()

	if count > math.MaxUint32 {
		log.Fatalf("count %d exceeds %d", count, uint32(math.MaxUint32))
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to dial %s: %v", addr, err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := grpcHandler.NewClient(conn)

	if decode != "" {
		id, err := strconv.ParseInt(decode, 10, 64)
		if err != nil {
			log.Fatalf("Invalid ID %q: %v", decode, err)
		}
		info, err := client.DecodeID(ctx, id)
		if err != nil {
			log.Fatalf("Decode failed: %v", err)
		}
		out, err := protojson.Marshal(info)
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	if count <= 1 {
		id, err := client.NextID(ctx)
		if err != nil {
			log.Fatalf("NextID failed: %v", err)
		}
		fmt.Println(id)
		return
	}

	ids, err := client.NextIDs(ctx, uint32(count))
	if err != nil {
		log.Fatalf("NextIDs failed: %v", err)
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}
