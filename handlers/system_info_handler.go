package handlers

import (
	"fmt"
	"runtime"
	"time"

	"autoannoy/bot"
	"autoannoy/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleBotStatCommand reports host and bot runtime statistics.
func HandleBotStatCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	var memUsage, memTotal float64
	if vm != nil {
		memUsage = vm.UsedPercent
		memTotal = float64(vm.Total) / 1024 / 1024 / 1024
	}

	var uptime string
	if hostInfo != nil {
		uptime = (time.Duration(hostInfo.Uptime) * time.Second).String()
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot Statistics",
		Color: 0x00bfff,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "CPU", Value: fmt.Sprintf("%d cores, %.1f%% used", cpuCount, cpuUsage), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%.1f%% of %.1f GB", memUsage, memTotal), Inline: true},
			{Name: "Host Uptime", Value: uptime, Inline: true},
			{Name: "Guilds (connected)", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Guilds (configured)", Value: fmt.Sprintf("%d", b.Store.Len()), Inline: true},
			{Name: "Go Heap", Value: fmt.Sprintf("%.1f MB", float64(memStats.Alloc)/1024/1024), Inline: true},
		},
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		utils.SendErrorResponse(s, i, "Failed to gather statistics.")
	}
}
