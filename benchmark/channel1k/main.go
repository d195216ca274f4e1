package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxChannels int = 1000
var readingsPerChannel int = 3
var httpHostPort string = "127.0.0.1:1080"

var sensorFields = []string{"temperature", "humidity", "pressure"}

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	channelIDs := make([]string, maxChannels)
	for i := 0; i < maxChannels; i++ {
		channelIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v channel IDs\n", maxChannels)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxChannels; i++ {
		i := i
		wg.Add(1)
		go func() {
			createChannel(channelIDs[i])
			fmt.Printf("\rcreated channel %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v channels: used time=%v seconds, throughput=%v action/second\n",
		maxChannels, usedTime.Seconds(), float64(maxChannels)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxChannels; i++ {
		i := i
		wg.Add(1)
		go func() {
			for n := 0; n < readingsPerChannel; n++ {
				submitReadings(channelIDs[i])
				time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
			}
			fmt.Printf("\rsubmitted readings for channel %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rsubmitted readings for %v channels: used time=%v seconds, throughput=%v action/second\n",
		maxChannels, usedTime.Seconds(), float64(maxChannels*readingsPerChannel)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func createChannel(channelID string) {
	payload := map[string]any{
		"channelId": channelID,
		"name":      "bench-" + channelID[:8],
		"fields":    sensorFields,
	}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/api/channel", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
}

func submitReadings(channelID string) {
	useStructured := flipCoin()

	field := sensorFields[rnd.Intn(len(sensorFields))]
	value := fmt.Sprintf("%.2f", rndFloat64(0.0, 100.0, 2))

	if useStructured {
		payload := map[string]any{
			"channelId": channelID,
			"data": []map[string]string{
				{"field": field, "value": value},
			},
		}
		jsonData, _ := json.Marshal(payload)
		resp, err := http.Post(fmt.Sprintf("http://%s/api/data", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	} else {
		query := url.Values{}
		query.Set("channelId", channelID)
		query.Set("field1", field)
		query.Set("value1", value)
		resp, err := http.Get(fmt.Sprintf("http://%s/api/data?%s", httpHostPort, query.Encode()))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}
